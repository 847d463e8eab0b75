package qsm

import (
	"qsmcore/pkg/qsmerr"
	"qsmcore/pkg/volume"
)

// validateShapes implements C9's checks common to every solver entry
// point: mask spatial extents must coincide with the field's, voxel size
// and direction must be well-formed, and the option enumerations must be
// closed-variant members.
func validateShapes(fieldShape volume.Shape3, mask *volume.Mask3, vsz volume.VoxelSize, opts Options) error {
	if mask.Shape != fieldShape {
		return qsmerr.Shape("mask", "mask extents must match the field's spatial extents")
	}
	if !vsz.Valid() {
		return qsmerr.Value("vsz", "voxel size must be positive and finite on every axis")
	}
	bdir := volume.DirectionVector(opts.BDir)
	if !bdir.Valid() {
		return qsmerr.Value("bdir", "direction vector must be non-zero and finite")
	}
	if err := opts.validate(); err != nil {
		return err
	}
	return nil
}
