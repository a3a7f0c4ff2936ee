package game

import (
	"math"
	"testing"
	"time"
)

func TestPowerUp_AnimationIsCosmetic(t *testing.T) {
	pu := NewPowerUp(PowerUpHealth, Vec3{X: 3, Y: 7, Z: -2})
	if pu.Position().Y != powerUpRestHeight {
		t.Fatalf("spawn height=%.2f want %.2f", pu.Position().Y, powerUpRestHeight)
	}
	for i := 0; i < 200; i++ {
		pu.Tick()
		pos := pu.Position()
		if pos.X != 3 || pos.Z != -2 {
			t.Fatalf("tick %d: ground position drifted to (%.2f,%.2f)", i, pos.X, pos.Z)
		}
		if math.Abs(pos.Y-powerUpRestHeight) > powerUpBounceAmp+1e-9 {
			t.Fatalf("tick %d: bounce out of range y=%.3f", i, pos.Y)
		}
	}
	if pu.Spin() == 0 {
		t.Error("expected spin to advance")
	}
}

func TestPowerUp_NoAnimationAfterCollect(t *testing.T) {
	pu := NewPowerUp(PowerUpAttack, Vec3{})
	pu.Tick()
	pu.Collect()
	pu.Collect()
	before := *pu
	for i := 0; i < 10; i++ {
		pu.Tick()
	}
	if *pu != before {
		t.Errorf("collected power-up still animating: before=%+v after=%+v", before, *pu)
	}
	if !pu.Collected() {
		t.Error("expected collected")
	}
}

func TestPowerUp_Duration(t *testing.T) {
	if d := NewPowerUp(PowerUpAttack, Vec3{}).Duration(); d != 30*time.Second {
		t.Errorf("attack duration=%v want 30s", d)
	}
	if d := NewPowerUp(PowerUpHealth, Vec3{}).Duration(); d != 0 {
		t.Errorf("health duration=%v want 0", d)
	}
}
