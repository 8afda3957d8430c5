package analyzer

import (
	"fmt"

	"github.com/monodyle/tokyo-go/geom"
	"github.com/monodyle/tokyo-go/model"
)

// Bullet is rebuilt from every snapshot; bullets carry no history.
type Bullet struct {
	ID       uint32
	Position geom.Point
	Velocity geom.Vector
	PlayerID uint32
	Radius   float64
}

func NewBullet(state model.BulletState) *Bullet {
	return &Bullet{
		ID:       state.ID,
		Position: geom.Pt(state.X, state.Y),
		Velocity: geom.FromPolar(geom.Radian(state.Angle), state.Speed),
		PlayerID: state.PlayerID,
		Radius:   state.Radius,
	}
}

// VirtualBullet is a hypothetical shot used to simulate "what if I fired at
// this angle". It has no id and no owner.
func VirtualBullet(position geom.Point, angle geom.Radian, speed, radius float64) *Bullet {
	return &Bullet{
		Position: position,
		Velocity: geom.FromPolar(angle, speed),
		Radius:   radius,
	}
}

func (b *Bullet) Pos() geom.Point     { return b.Position }
func (b *Bullet) Vel() geom.Vector    { return b.Velocity }
func (b *Bullet) BodyRadius() float64 { return b.Radius }
func (b *Bullet) String() string      { return fmt.Sprintf("bullet#%d@%v", b.ID, b.Position) }

// Item is a pickup lying on the field.
type Item struct {
	ID       uint32
	Position geom.Point
	Radius   float64
	Type     model.ItemType
}

func NewItem(it model.Item) Item {
	return Item{ID: it.ID, Position: geom.Pt(it.X, it.Y), Radius: it.Radius, Type: it.ItemType}
}

func (it Item) Pos() geom.Point { return it.Position }
