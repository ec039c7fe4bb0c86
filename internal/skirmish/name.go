package skirmish

import (
	"context"
	"fmt"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/prompt"
)

// NameQuestion asks the player what to be called.
const NameQuestion = "What is your name? (leave empty to keep your default)"

// Asker is a prompt.Interface that can also read free text.
type Asker interface {
	prompt.Interface
	Ask(ctx context.Context, question string) (string, error)
}

// AskName asks for the player's name until the answer is empty or differs
// from every non-player combatant's name. Without a human combatant it asks
// nothing.
//
// Postcondition: Returns "" to keep the roster name, a usable name, or an
// input error.
func AskName(ctx context.Context, ui Asker, chars []*character.Character) (string, error) {
	player := firstHuman(chars)
	if player == nil {
		return "", nil
	}
	for {
		name, err := ui.Ask(ctx, NameQuestion)
		if err != nil {
			return "", err
		}
		if name == "" || !nameTaken(chars, player, name) {
			return name, nil
		}
		ui.Write(fmt.Sprintf("%s is already fighting; pick another name.", name))
	}
}

func nameTaken(chars []*character.Character, player *character.Character, name string) bool {
	for _, c := range chars {
		if c != player && c.Name == name {
			return true
		}
	}
	return false
}
