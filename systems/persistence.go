package systems

import (
	"encoding/json"

	"github.com/quasilyte/gdata"
	"github.com/rs/zerolog/log"
)

const progressKey = "progress"

// SavedProgress is what survives between runs.
type SavedProgress struct {
	LastMap string `json:"lastMap"`
}

// ItemStore is the part of gdata.Manager the game uses.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Persistence saves and restores progress. A Persistence without a store
// reads nothing and writes nothing.
type Persistence struct {
	store ItemStore
}

// InitPersistence opens the per-user gdata storage for appName.
func InitPersistence(appName string) (*Persistence, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return &Persistence{}, err
	}
	return NewPersistence(m), nil
}

func NewPersistence(store ItemStore) *Persistence {
	return &Persistence{store: store}
}

// LoadProgress returns nil when nothing was saved yet or the save is
// unreadable.
func (p *Persistence) LoadProgress() *SavedProgress {
	if p == nil || p.store == nil {
		return nil
	}

	data, err := p.store.LoadItem(progressKey)
	if err != nil {
		log.Warn().Err(err).Msg("could not load progress")
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var progress SavedProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		log.Warn().Err(err).Msg("could not parse saved progress")
		return nil
	}
	return &progress
}

func (p *Persistence) SaveProgress(progress SavedProgress) error {
	if p == nil || p.store == nil {
		return nil
	}

	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	if err := p.store.SaveItem(progressKey, data); err != nil {
		log.Warn().Err(err).Msg("could not save progress")
		return err
	}
	return nil
}
