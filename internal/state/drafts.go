package state

import (
	"github.com/google/uuid"

	"github.com/stagewatch-io/stagewatch/internal/client"
)

// StagedImage is an attachment staged locally against a pending item,
// encoded and held until the draft is submitted.
type StagedImage struct {
	ID      string
	Path    string
	Payload client.ImagePayload
}

// Draft is a user's in-progress response to one pending item. Drafts are
// keyed by item id so simultaneously pending items never share input.
type Draft struct {
	Text   string
	Images []StagedImage
}

// Draft returns the draft for an item id, creating it on first access.
func (s *Store) Draft(itemID string) *Draft {
	d, ok := s.drafts[itemID]
	if !ok {
		d = &Draft{}
		s.drafts[itemID] = d
	}
	return d
}

// StageImage encodes an image file and attaches it to the item's draft.
func (s *Store) StageImage(itemID, path string) error {
	payload, err := client.EncodeImageFile(path)
	if err != nil {
		return err
	}
	d := s.Draft(itemID)
	d.Images = append(d.Images, StagedImage{
		ID:      uuid.New().String(),
		Path:    path,
		Payload: payload,
	})
	return nil
}

// UnstageImage removes one staged image from the item's draft.
func (s *Store) UnstageImage(itemID, imageID string) {
	d, ok := s.drafts[itemID]
	if !ok {
		return
	}
	for i, img := range d.Images {
		if img.ID == imageID {
			d.Images = append(d.Images[:i], d.Images[i+1:]...)
			return
		}
	}
}

// ClearDraft drops the draft for exactly one item id, called only after a
// successful submission. Failed submissions keep the draft for retry.
func (s *Store) ClearDraft(itemID string) {
	delete(s.drafts, itemID)
}

// HasDraft reports whether an item has any uncommitted input.
func (s *Store) HasDraft(itemID string) bool {
	d, ok := s.drafts[itemID]
	return ok && (d.Text != "" || len(d.Images) > 0)
}
