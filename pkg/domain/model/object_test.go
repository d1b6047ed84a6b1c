// 指示: miu200521358
package model

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
)

func TestMatrixWorldFollowsParentChain(t *testing.T) {
	parent := NewObject("parent", TypeRigidGroup)
	parent.Translation = mmath.NewVec3(1, 0, 0)

	child := NewObject("child", TypeRigidBody)
	child.Parent = parent
	child.Translation = mmath.NewVec3(0, 2, 0)

	world := child.MatrixWorld().Translation()
	if !world.NearEquals(mmath.NewVec3(1, 2, 0), 1e-12) {
		t.Fatalf("world translation mismatch: got=%v", world)
	}
}

func TestSetParentBonePreservesWorldTransform(t *testing.T) {
	arm := NewObject("armature", TypeArmature)
	arm.Armature = NewArmature()
	rest := mmath.NewMat4FromTranslation(mmath.NewVec3(0, 1, 0))
	bone := NewBone("腰", rest)
	bone.PoseMatrix = mmath.NewMat4FromTRS(
		mmath.NewVec3(0.5, 1.0, 0),
		mmath.NewQuaternionFromAxisAngle(mmath.NewVec3(0, 0, 1), math.Pi/6),
		mmath.OneVec3(),
	)
	arm.Armature.AppendBone(bone)

	obj := NewObject("rigid", TypeRigidBody)
	obj.Translation = mmath.NewVec3(2, 3, 4)
	obj.Rotation = mmath.NewQuaternionFromAxisAngle(mmath.NewVec3(1, 0, 0), 0.4)

	before := obj.MatrixWorld()
	obj.SetParentBone(arm, "腰")
	after := obj.MatrixWorld()

	if !after.NearEquals(before, 1e-9) {
		t.Fatalf("world matrix should be preserved: before=%v after=%v", before, after)
	}
	if obj.ParentKind != ParentBone || obj.ParentBoneName != "腰" {
		t.Fatalf("bone parenting not applied: kind=%v bone=%s", obj.ParentKind, obj.ParentBoneName)
	}
}

func TestRemoveConstraintKeepsOthers(t *testing.T) {
	obj := NewObject("rigid", TypeRigidBody)
	obj.AddConstraint(&ChildOfConstraint{Name: "a"})
	obj.AddConstraint(&ChildOfConstraint{Name: "b"})
	obj.RemoveConstraint("a")
	if _, ok := obj.Constraint("a"); ok {
		t.Fatalf("constraint a should be removed")
	}
	if _, ok := obj.Constraint("b"); !ok {
		t.Fatalf("constraint b should remain")
	}
}
