// 指示: miu200521358
package rigging

import (
	"testing"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

func TestBackupTransformsNeverOverwrites(t *testing.T) {
	obj := model.NewObject("body", model.TypeRigidBody)
	obj.Translation = mmath.NewVec3(1, 2, 3)
	obj.Rotation = mmath.NewQuaternion(0, 1, 0, 0)

	backupTransforms(obj)

	// 再組立を模して姿勢を書き換えてから再度退避する
	obj.Translation = mmath.NewVec3(9, 9, 9)
	obj.Rotation = mmath.QuaternionIdent()
	backupTransforms(obj)

	restoreTransforms(obj)
	if obj.Translation != mmath.NewVec3(1, 2, 3) {
		t.Fatalf("translation should restore to first backup, got %v", obj.Translation)
	}
	if obj.Rotation != mmath.NewQuaternion(0, 1, 0, 0) {
		t.Fatalf("rotation should restore to first backup, got %v", obj.Rotation)
	}
	if _, ok := obj.Props[backupTranslationKey]; ok {
		t.Fatalf("backup translation key should be removed after restore")
	}
	if _, ok := obj.Props[backupRotationKey]; ok {
		t.Fatalf("backup rotation key should be removed after restore")
	}
}

func TestRestoreTransformsWithoutBackupIsNoop(t *testing.T) {
	obj := model.NewObject("body", model.TypeRigidBody)
	obj.Translation = mmath.NewVec3(4, 5, 6)

	restoreTransforms(obj)
	if obj.Translation != mmath.NewVec3(4, 5, 6) {
		t.Fatalf("translation should stay unchanged, got %v", obj.Translation)
	}
}
