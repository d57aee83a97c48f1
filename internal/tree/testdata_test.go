package tree

import (
	"fmt"

	"pgregory.net/rapid"

	"github.com/pstuifzand/sortable-tree/internal/model"
)

// sampleItems is the forest of the dnd-kit sortable tree example.
func sampleItems() []*model.Item {
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

// smallItems is A, B[B1].
func smallItems() []*model.Item {
	return []*model.Item{
		model.NewItem("A"),
		model.NewItem("B", model.NewItem("B1")),
	}
}

// deepItems is A[A1[A2]], B, C.
func deepItems() []*model.Item {
	return []*model.Item{
		model.NewItem("A", model.NewItem("A1", model.NewItem("A2"))),
		model.NewItem("B"),
		model.NewItem("C"),
	}
}

// forestGen draws forests of up to four levels with unique ids.
func forestGen() *rapid.Generator[[]*model.Item] {
	return rapid.Custom(func(t *rapid.T) []*model.Item {
		next := 0
		var level func(depth int) []*model.Item
		level = func(depth int) []*model.Item {
			n := rapid.IntRange(0, 4).Draw(t, "width")
			if depth == 0 && n == 0 {
				n = 1
			}
			items := make([]*model.Item, 0, n)
			for i := 0; i < n; i++ {
				next++
				item := model.NewItem(fmt.Sprintf("item-%d", next))
				item.Collapsed = rapid.Bool().Draw(t, "collapsed")
				if depth < 3 {
					item.Children = level(depth + 1)
				}
				items = append(items, item)
			}
			return items
		}
		return level(0)
	})
}
