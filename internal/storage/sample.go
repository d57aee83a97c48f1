package storage

import (
	"github.com/pstuifzand/sortable-tree/internal/model"
)

// SampleItems returns the demo forest shown when no seed file is given
func SampleItems() []*model.Item {
	return []*model.Item{
		model.NewItem("Home"),
		model.NewItem("Collections",
			model.NewItem("Spring"),
			model.NewItem("Summer"),
			model.NewItem("Fall"),
			model.NewItem("Winter"),
		),
		model.NewItem("About Us"),
		model.NewItem("My Account",
			model.NewItem("Addresses"),
			model.NewItem("Order History"),
		),
	}
}

// LoadOrSample loads the seed file at path, or returns the demo forest
// when path is empty.
func LoadOrSample(path string, format Format) ([]*model.Item, error) {
	if path == "" {
		return SampleItems(), nil
	}
	store := NewFileStore(path)
	if format != FormatAuto && format != "" {
		store.Format = format
	}
	return store.Load()
}
