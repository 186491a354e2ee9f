package events

import "github.com/dshills/code4food/internal/event/topic"

// Pet event topics.
const (
	// TopicPetAdopted is published after a new pet joins the collection.
	TopicPetAdopted topic.Topic = "pet.adopted"

	// TopicPetSwitched is published after the active pet changes.
	TopicPetSwitched topic.Topic = "pet.switched"

	// TopicPetFed is published when an eating delay completes.
	TopicPetFed topic.Topic = "pet.fed"

	// TopicPetHungry is published when satiety crosses the hungry threshold.
	TopicPetHungry topic.Topic = "pet.hungry"

	// TopicPetStarving is published when satiety crosses the starving threshold.
	TopicPetStarving topic.Topic = "pet.starving"
)

// PetChanged describes the pet an event refers to.
type PetChanged struct {
	// PetID is the pet's stable identifier.
	PetID string

	// Name is the pet's display name.
	Name string

	// Satiety is the satiety after the change.
	Satiety float64

	// Amount is the feeding amount for TopicPetFed.
	Amount float64
}
