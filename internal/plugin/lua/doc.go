// Package lua loads pet catalog extensions written in Lua.
//
// A catalog script runs in a sandboxed gopher-lua state with only the base,
// table, string and math libraries opened. It returns a list of entries:
//
//	local c4f = require("code4food")
//
//	local extra = {
//	  { emoji = "🦔", name = "Hedgehog", phrases = { "Snuffle!", "Hff hff!" } },
//	}
//
//	-- Give every built-in cat a new line.
//	for _, name in ipairs(c4f.kinds()) do
//	  if string.find(name, "Cat") then
//	    local p = c4f.phrases(name)
//	    table.insert(p, "Feed me, human.")
//	    table.insert(extra, { emoji = c4f.emoji(name), name = name, phrases = p })
//	  end
//	end
//
//	return extra
//
// The code4food module exposes the base catalog read-only: kinds() lists the
// kind names in order, emoji(name) and phrases(name) describe one kind.
package lua
