package floor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"restaurant-floor-backend/internal/geom"
	"restaurant-floor-backend/internal/model"
)

// SchemaVersion is written into every serialized snapshot.
const SchemaVersion = 1

type document struct {
	Version   int              `json:"version"`
	Tables    []model.Table    `json:"tables"`
	Walls     []model.Wall     `json:"walls"`
	MenuItems []model.MenuItem `json:"menuItems"`
	Orders    []model.Order    `json:"orders"`
}

// Serialize encodes s as JSON. Timestamps are written as RFC 3339 with
// nanoseconds, so they come back exactly.
func Serialize(s State) ([]byte, error) {
	return json.Marshal(document{
		Version:   SchemaVersion,
		Tables:    s.Tables,
		Walls:     s.Walls,
		MenuItems: s.MenuItems,
		Orders:    s.Orders,
	})
}

// Deserialize decodes a snapshot written by Serialize. It also accepts walls
// stored with flat startX/startY/endX/endY fields and non-numeric ids, which
// are renumbered after the highest numeric id. A snapshot that breaks a store
// invariant, such as two tables sharing an id, is rejected.
func Deserialize(data []byte) (State, error) {
	if !gjson.ValidBytes(data) {
		return State{}, errors.New("snapshot is not valid JSON")
	}
	if v := gjson.GetBytes(data, "version").Int(); v > SchemaVersion {
		return State{}, fmt.Errorf("snapshot schema version %d is newer than supported version %d", v, SchemaVersion)
	}

	var doc struct {
		Tables    []model.Table    `json:"tables"`
		MenuItems []model.MenuItem `json:"menuItems"`
		Orders    []model.Order    `json:"orders"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	state := State{
		Tables:    doc.Tables,
		Walls:     decodeWalls(gjson.GetBytes(data, "walls")),
		MenuItems: doc.MenuItems,
		Orders:    doc.Orders,
	}
	if err := checkState(&state); err != nil {
		return State{}, fmt.Errorf("inconsistent snapshot: %w", err)
	}
	return state, nil
}

func decodeWalls(raw gjson.Result) []model.Wall {
	if !raw.IsArray() {
		return nil
	}
	var (
		walls   []model.Wall
		missing []int
	)
	raw.ForEach(func(_, v gjson.Result) bool {
		w := model.Wall{
			Thickness: v.Get("thickness").Float(),
			Zone:      model.ZoneID(v.Get("zone").String()),
		}
		if v.Get("startX").Exists() {
			w.Start = geom.Point{X: v.Get("startX").Float(), Y: v.Get("startY").Float()}
			w.End = geom.Point{X: v.Get("endX").Float(), Y: v.Get("endY").Float()}
		} else {
			w.Start = geom.Point{X: v.Get("start.x").Float(), Y: v.Get("start.y").Float()}
			w.End = geom.Point{X: v.Get("end.x").Float(), Y: v.Get("end.y").Float()}
		}
		if w.Thickness <= 0 {
			w.Thickness = model.DefaultWallThickness
		}
		if !w.Zone.Valid() {
			w.Zone = model.ZoneFree
		}
		if id := v.Get("id"); id.Type == gjson.Number {
			w.ID = int(id.Int())
		} else {
			missing = append(missing, len(walls))
		}
		walls = append(walls, w)
		return true
	})

	next := State{Walls: walls}.NextWallID()
	for _, idx := range missing {
		walls[idx].ID = next
		next++
	}
	return walls
}
