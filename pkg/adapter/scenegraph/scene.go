// 指示: miu200521358
package scenegraph

import (
	"github.com/tiendc/go-deepcopy"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
	"github.com/miu200521358/mu_mmd_rig/pkg/infra/logging"
)

// Scene はホストシーングラフのインメモリ実装。
// オブジェクトは採番IDをキーとするレジストリで保持し、生のポインタ集合を
// 識別子代わりに使わない。
type Scene struct {
	seq                 int
	order               []int
	byID                map[int]*model.Object
	physicsWorldEnabled bool
}

// NewScene は空シーンを生成する。物理ワールドは有効状態で始まる。
func NewScene() *Scene {
	return &Scene{
		byID:                map[int]*model.Object{},
		physicsWorldEnabled: true,
	}
}

// LinkObject はオブジェクトをシーンへ登録しIDを採番する。
func (s *Scene) LinkObject(obj *model.Object) {
	if obj == nil {
		return
	}
	if _, ok := s.byID[obj.ID]; ok && s.byID[obj.ID] == obj {
		return
	}
	s.seq++
	obj.ID = s.seq
	s.order = append(s.order, obj.ID)
	s.byID[obj.ID] = obj
}

// NewEmpty は空オブジェクトを生成して登録する。
func (s *Scene) NewEmpty(name string, objType model.ObjectType) *model.Object {
	obj := model.NewObject(name, objType)
	s.LinkObject(obj)
	return obj
}

// Duplicate はsrcを含め合計total個のオブジェクト列を返す。
// 複製は設定値の深いコピーで、親参照のみ共有する。mmd_toolsの
// duplicateObjectと同じく、不足分を複製で補う。
func (s *Scene) Duplicate(src *model.Object, total int) []*model.Object {
	objs := []*model.Object{src}
	for len(objs) < total {
		dup, err := duplicateObject(src)
		if err != nil {
			logging.DefaultLogger().Error("オブジェクト複製に失敗しました: %v", err)
			break
		}
		s.LinkObject(dup)
		objs = append(objs, dup)
	}
	return objs
}

// duplicateObject は親参照を共有したままオブジェクトを深いコピーで複製する。
func duplicateObject(src *model.Object) (*model.Object, error) {
	parent := src.Parent
	src.Parent = nil
	defer func() { src.Parent = parent }()

	dup := &model.Object{}
	if err := deepcopy.Copy(dup, src); err != nil {
		return nil, err
	}
	dup.Parent = parent
	dup.ID = 0
	return dup, nil
}

// Delete はオブジェクトをレジストリから取り除く。
// 削除対象を親に持つオブジェクトはワールド変換を保ったまま親を外す。
func (s *Scene) Delete(objs ...*model.Object) {
	removed := map[int]struct{}{}
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		if _, ok := s.byID[obj.ID]; !ok {
			continue
		}
		delete(s.byID, obj.ID)
		removed[obj.ID] = struct{}{}
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := removed[id]; !ok {
			kept = append(kept, id)
		}
	}
	s.order = kept

	for _, obj := range s.Objects() {
		if obj.Parent == nil {
			continue
		}
		if _, ok := removed[obj.Parent.ID]; ok && s.byID[obj.Parent.ID] == nil {
			world := obj.MatrixWorld()
			obj.Parent = nil
			obj.ParentKind = model.ParentObject
			obj.ParentBoneName = ""
			obj.SetMatrixWorld(world)
		}
	}
}

// Objects は登録順の全オブジェクトを返す。
func (s *Scene) Objects() []*model.Object {
	objs := make([]*model.Object, 0, len(s.order))
	for _, id := range s.order {
		if obj, ok := s.byID[id]; ok {
			objs = append(objs, obj)
		}
	}
	return objs
}

// ObjectsUnder はrootの子孫オブジェクトを登録順で返す。
func (s *Scene) ObjectsUnder(root *model.Object) []*model.Object {
	var objs []*model.Object
	for _, obj := range s.Objects() {
		for p := obj.Parent; p != nil; p = p.Parent {
			if p == root {
				objs = append(objs, obj)
				break
			}
		}
	}
	return objs
}

// Evaluate は依存グラフの強制再評価に相当する。
// ミュートされていないボーン追従コンストレイントとCHILD_OF関係を適用する。
// IKはホスト側ソルバの領分であり、ここでは何もしない。
func (s *Scene) Evaluate() {
	for _, obj := range s.Objects() {
		if obj.Armature == nil {
			continue
		}
		armWorldInv := obj.MatrixWorld().Inverted()
		for _, bone := range obj.Armature.Bones() {
			for _, c := range bone.Constraints {
				if c.Mute || c.Target == nil {
					continue
				}
				switch c.Kind {
				case model.BoneConstraintCopyTransforms:
					bone.PoseMatrix = armWorldInv.Muled(c.Target.MatrixWorld())
				case model.BoneConstraintCopyRotation:
					t := bone.PoseMatrix.Translation()
					_, r, _ := armWorldInv.Muled(c.Target.MatrixWorld()).Decompose()
					bone.PoseMatrix = mmath.NewMat4FromTRS(t, r, mmath.OneVec3())
				}
			}
		}
	}

	for _, obj := range s.Objects() {
		for _, c := range obj.Constraints {
			if c.Mute || c.Target == nil || c.Subtarget == "" {
				continue
			}
			if c.Target.Armature == nil {
				continue
			}
			bone, ok := c.Target.Armature.Bone(c.Subtarget)
			if !ok {
				continue
			}
			factor := c.Target.MatrixWorld().Muled(bone.PoseMatrix)
			world := factor.Muled(c.Inverse).Muled(obj.MatrixLocal())
			obj.SetMatrixWorld(world)
		}
	}
}

// SetPhysicsWorldEnabled は物理ワールド有効状態を切り替え、以前の値を返す。
func (s *Scene) SetPhysicsWorldEnabled(enabled bool) bool {
	prev := s.physicsWorldEnabled
	s.physicsWorldEnabled = enabled
	return prev
}

// PhysicsWorldEnabled は物理ワールド有効状態を返す。
func (s *Scene) PhysicsWorldEnabled() bool {
	return s.physicsWorldEnabled
}
