// 指示: miu200521358
package rigging

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

// 組立前の位置と回転を退避する予約プロパティキー。
const (
	backupTranslationKey = "mu_rig_backup_translation"
	backupRotationKey    = "mu_rig_backup_rotation"
)

// backupTransforms は位置と回転を予約キーへ退避する。
// 既に退避済みの値は決して上書きしない。Cleanを挟まない再組立でも
// 真の元姿勢が失われないようにするためである。
func backupTransforms(obj *model.Object) {
	if _, ok := obj.Props[backupTranslationKey]; !ok {
		obj.Props[backupTranslationKey] = obj.Translation
	}
	if _, ok := obj.Props[backupRotationKey]; !ok {
		obj.Props[backupRotationKey] = obj.Rotation
	}
}

// restoreTransforms は退避値を書き戻してキーを削除する。未退避なら何もしない。
func restoreTransforms(obj *model.Object) {
	if v, ok := obj.Props[backupTranslationKey].(mmath.Vec3); ok {
		obj.Translation = v
		delete(obj.Props, backupTranslationKey)
	}
	if v, ok := obj.Props[backupRotationKey].(mmath.Quaternion); ok {
		obj.Rotation = v
		delete(obj.Props, backupRotationKey)
	}
}
