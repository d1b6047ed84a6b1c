// 指示: miu200521358
package mscene

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

// SceneGraph はホストDCCアプリのシーングラフへ対する狭い契約を表す。
// リグエンジンはこの契約のみを通してシーンを操作する。
type SceneGraph interface {
	// NewEmpty は空オブジェクトを生成してシーンへ登録する。
	NewEmpty(name string, objType model.ObjectType) *model.Object
	// LinkObject は既存オブジェクトをシーンへ登録する。
	LinkObject(obj *model.Object)
	// Duplicate はsrcを含め合計total個のオブジェクト列を返す。不足分は複製で補う。
	Duplicate(src *model.Object, total int) []*model.Object
	// Delete はオブジェクトをシーンから取り除く。
	Delete(objs ...*model.Object)
	// Objects は登録順の全オブジェクトを返す。
	Objects() []*model.Object
	// ObjectsUnder はrootを親に持つ(再帰的な)オブジェクト群を返す。
	ObjectsUnder(root *model.Object) []*model.Object
	// Evaluate は依存グラフの強制再評価に相当する。
	Evaluate()
	// SetPhysicsWorldEnabled は物理ワールドの有効状態を切り替え、以前の値を返す。
	SetPhysicsWorldEnabled(enabled bool) bool
	// PhysicsWorldEnabled は物理ワールドの有効状態を返す。
	PhysicsWorldEnabled() bool
}
