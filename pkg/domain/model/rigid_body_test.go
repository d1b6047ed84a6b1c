// 指示: miu200521358
package model

import (
	"errors"
	"testing"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
)

func newSizedRigidBody(shape Shape) *Object {
	obj := NewObject("rigid", TypeRigidBody)
	obj.RigidBody = &RigidBodySettings{Shape: shape, Bound: true}
	obj.BoundBox = NewBoundBox(mmath.NewVec3(-1, -1, -1), mmath.NewVec3(1, 1, 3))
	return obj
}

func TestGetRigidBodySizeCapsule(t *testing.T) {
	size, err := GetRigidBodySize(newSizedRigidBody(ShapeCapsule))
	if err != nil {
		t.Fatalf("size extraction failed: %v", err)
	}
	if !size.NearEquals(mmath.NewVec3(1.0, 2.0, 0), 1e-12) {
		t.Fatalf("capsule size mismatch: got=%v", size)
	}
}

func TestGetRigidBodySizeSphere(t *testing.T) {
	size, err := GetRigidBodySize(newSizedRigidBody(ShapeSphere))
	if err != nil {
		t.Fatalf("size extraction failed: %v", err)
	}
	if !size.NearEquals(mmath.NewVec3(2.0, 0, 0), 1e-12) {
		t.Fatalf("sphere size mismatch: got=%v", size)
	}
}

func TestGetRigidBodySizeBox(t *testing.T) {
	size, err := GetRigidBodySize(newSizedRigidBody(ShapeBox))
	if err != nil {
		t.Fatalf("size extraction failed: %v", err)
	}
	if !size.NearEquals(mmath.NewVec3(1, 1, 2), 1e-12) {
		t.Fatalf("box size mismatch: got=%v", size)
	}
}

func TestGetRigidBodySizeRejectsUnknownShape(t *testing.T) {
	_, err := GetRigidBodySize(newSizedRigidBody(Shape("CYLINDER")))
	if !errors.Is(err, ErrInvalidShapeType) {
		t.Fatalf("expected ErrInvalidShapeType: got=%v", err)
	}
}

func TestRigidBodyRangeUsesBoundBoxDiagonal(t *testing.T) {
	obj := newSizedRigidBody(ShapeBox)
	// 対角は(-1,-1,-1)-(1,1,3)で長さsqrt(4+4+16)
	want := 4.898979485566356
	got := RigidBodyRange(obj)
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("diagonal mismatch: want=%f got=%f", want, got)
	}
}

func TestEnsureParentRelationRecreatesFromBoneSetting(t *testing.T) {
	arm := NewObject("armature", TypeArmature)
	arm.Armature = NewArmature()
	obj := newSizedRigidBody(ShapeBox)
	obj.RigidBody.Bone = "腰"

	relation, created := obj.EnsureParentRelation(arm)
	if !created {
		t.Fatalf("relation should be created")
	}
	if relation.Target != arm || relation.Subtarget != "腰" {
		t.Fatalf("relation target mismatch: target=%v subtarget=%s", relation.Target, relation.Subtarget)
	}

	again, created := obj.EnsureParentRelation(arm)
	if created || again != relation {
		t.Fatalf("second call should return the existing relation")
	}
}
