package scene

import "github.com/Faultbox/alien-lander/pkg/math"

// NopBackend discards every call. Used by the headless driver.
type NopBackend struct{}

func (NopBackend) UploadGrid(profile, mask []math.Vec3) error      { return nil }
func (NopBackend) BeginTerrain(viewProj, model, texture math.Mat4) {}
func (NopBackend) DrawMask(first, count int32, c Color)            {}
func (NopBackend) DrawProfile(first, count int32, c Color)         {}
