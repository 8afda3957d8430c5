package model

import (
	"encoding/json"
	"fmt"
)

type ItemType string

const (
	FasterBullet ItemType = "FasterBullet"
	MoreBullet   ItemType = "MoreBullet"
	BiggerBullet ItemType = "BiggerBullet"
)

func (t *ItemType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unmarshal item type: %w", err)
	}
	switch ItemType(s) {
	case FasterBullet, MoreBullet, BiggerBullet:
		*t = ItemType(s)
		return nil
	}
	return fmt.Errorf("unknown item type %q", s)
}

type Item struct {
	ID       uint32   `json:"id"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Radius   float64  `json:"radius"`
	ItemType ItemType `json:"item_type" jsonschema:"enum=FasterBullet,enum=MoreBullet,enum=BiggerBullet"`
}

// ApplyTo mutates p the way the server does when p picks the item up.
// Every item also makes the player a bigger target.
func (it Item) ApplyTo(p *PlayerState) {
	switch it.ItemType {
	case FasterBullet:
		p.BulletSpeed *= BulletSpeedIncremental
	case MoreBullet:
		p.BulletLimit++
	case BiggerBullet:
		p.BulletRadius *= BulletRadiusIncremental
		p.BulletSpeed -= BulletSpeedIncremental
	}
	p.Radius *= PlayerRadiusIncremental
}
