// Package pet implements the code4food virtual pet: a pet whose satiety
// decays on a timer and is replenished by the characters the user types.
//
// The Manager owns all behaviour and talks to its host editor only through
// the interfaces in host.go:
//
//	m, err := pet.NewManager(pet.Host{
//		Store:    st,
//		Status:   item,
//		Prompter: prompts,
//		Notifier: toasts,
//		Changes:  pet.NewBusChangeSource(bus),
//	})
//	if err != nil {
//		return err
//	}
//	if err := m.Start(); err != nil {
//		return err
//	}
//	defer m.Dispose()
//
// Timer and change-stream callbacks are serialised behind one mutex, so the
// host may deliver them from any goroutine.
package pet
