package usecase

import (
	"pressroom/services/admin/internal/selection"
	"pressroom/services/admin/internal/viewstate"
)

// SelectionUseCase exposes the per-view selection transitions. Each call
// loads the view's state, applies one transition, saves it back and returns
// the resulting snapshot for the client to render.
type SelectionUseCase interface {
	Get(viewID, list string) (selection.Snapshot, error)
	Toggle(viewID, list string, id int64) (selection.Snapshot, error)
	SetSelectAll(viewID, list string, on bool) (selection.Snapshot, error)
	Replace(viewID, list string, rawIDs []string) (selection.Snapshot, error)
	Clear(viewID, list string) (selection.Snapshot, error)
}

type selectionUseCase struct {
	views viewstate.Store
}

func NewSelectionUseCase(views viewstate.Store) SelectionUseCase {
	return &selectionUseCase{views: views}
}

func (uc *selectionUseCase) Get(viewID, list string) (selection.Snapshot, error) {
	state, err := uc.views.Selection(viewID, list)
	if err != nil {
		return selection.Snapshot{}, err
	}
	return state.Snapshot(), nil
}

func (uc *selectionUseCase) Toggle(viewID, list string, id int64) (selection.Snapshot, error) {
	state, err := uc.views.Selection(viewID, list)
	if err != nil {
		return selection.Snapshot{}, err
	}
	state.Toggle(id)
	if err := uc.views.SaveSelection(viewID, list, state); err != nil {
		return selection.Snapshot{}, err
	}
	return state.Snapshot(), nil
}

func (uc *selectionUseCase) SetSelectAll(viewID, list string, on bool) (selection.Snapshot, error) {
	state, err := uc.views.Selection(viewID, list)
	if err != nil {
		return selection.Snapshot{}, err
	}
	state.SetSelectAll(on)
	if err := uc.views.SaveSelection(viewID, list, state); err != nil {
		return selection.Snapshot{}, err
	}
	return state.Snapshot(), nil
}

// Replace overwrites the selection with raw checkbox values as they arrive
// from a form. Malformed ids are dropped, never an error.
func (uc *selectionUseCase) Replace(viewID, list string, rawIDs []string) (selection.Snapshot, error) {
	state, err := uc.views.Selection(viewID, list)
	if err != nil {
		return selection.Snapshot{}, err
	}
	state.Replace(selection.NormalizeIDs(rawIDs))
	if err := uc.views.SaveSelection(viewID, list, state); err != nil {
		return selection.Snapshot{}, err
	}
	return state.Snapshot(), nil
}

func (uc *selectionUseCase) Clear(viewID, list string) (selection.Snapshot, error) {
	state, err := uc.views.Selection(viewID, list)
	if err != nil {
		return selection.Snapshot{}, err
	}
	state.Clear()
	if err := uc.views.SaveSelection(viewID, list, state); err != nil {
		return selection.Snapshot{}, err
	}
	return state.Snapshot(), nil
}
