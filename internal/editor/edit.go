package editor

import (
	"fmt"

	"github.com/alexisbeaulieu97/carousel/internal/model"
	"github.com/alexisbeaulieu97/carousel/internal/render"
)

// Controls returns the editable controls of the selected block. Calling Set
// on them does not change the state; use EditField for that.
func Controls(s State) []render.Control {
	block, ok := s.Block()
	if !ok {
		return nil
	}
	return render.For(block.Type).Editable(block.Content, func(model.Content) {})
}

// EditField sets one field of the selected block through its control.
func EditField(s State, key, value string) State {
	block, ok := s.Block()
	if !ok {
		return refuse(s, fmt.Errorf("select a block first"))
	}

	var next model.Content
	for _, control := range render.For(block.Type).Editable(block.Content, func(c model.Content) { next = c }) {
		if control.Key != key {
			continue
		}
		if err := control.Set(value); err != nil {
			return refuse(s, err)
		}
		return UpdateBlock(s, block.ID, next)
	}
	return refuse(s, fmt.Errorf("%s blocks have no %q field", block.Type, key))
}
