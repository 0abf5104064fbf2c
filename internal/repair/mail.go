package repair

import "profilefix/internal/profile"

const mainSlot = "main"

// fixMailAttachments gives a fresh stash id to message attachments that
// were filed under the player's live equipment id. Their top-level items are
// re-rooted under the new id in the main slot.
func fixMailAttachments(p *Pass) {
	inv, ok := p.Profile.Inventory()
	if !ok {
		return
	}
	equipment, _ := profile.String(inv, "equipment")
	if equipment == "" {
		return
	}
	dialogues, ok := p.Profile.Dialogues()
	if !ok {
		return
	}
	for _, dialogueID := range sortedKeys(dialogues) {
		dialogue, ok := profile.AsObject(dialogues[dialogueID])
		if !ok {
			continue
		}
		messages, _ := profile.ArrayAt(dialogue, "messages")
		for _, raw := range messages {
			msg, ok := profile.AsObject(raw)
			if !ok {
				continue
			}
			attached, ok := profile.Child(msg, "items")
			if !ok {
				continue
			}
			if stash, _ := profile.String(attached, "stash"); stash != equipment {
				continue
			}
			data, ok := profile.ArrayAt(attached, "data")
			if !ok {
				continue
			}

			newStash := p.IDs.Next()
			attached["stash"] = newStash
			ReparentOrphans(newStash, data)
			for _, rawItem := range data {
				it, ok := profile.AsObject(rawItem)
				if ok && profile.ParentID(it) == newStash && profile.SlotID(it) == hideoutSlot {
					it["slotId"] = mainSlot
				}
			}
			msgID, _ := profile.String(msg, "_id")
			p.Log.Fixed("Moved attachments of message %s in dialogue %s to new stash %s", msgID, dialogueID, newStash)
		}
	}
}
