// 指示: miu200521358
package io_scene

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/adapter/scenegraph"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

// sceneDoc はリグシーンファイルのトップレベル要素を表す。
type sceneDoc struct {
	Name        string         `yaml:"name"`
	Armature    armatureDoc    `yaml:"armature"`
	RigidBodies []rigidBodyDoc `yaml:"rigid_bodies"`
	Joints      []jointDoc     `yaml:"joints"`
}

type armatureDoc struct {
	Bones []boneDoc `yaml:"bones"`
}

type boneDoc struct {
	Name string        `yaml:"name"`
	Rest transformDoc  `yaml:"rest"`
	Pose *transformDoc `yaml:"pose,omitempty"`
	IK   bool          `yaml:"ik,omitempty"`
}

// transformDoc は平行移動と回転(w,x,y,z)の組を表す。
type transformDoc struct {
	Translation [3]float64 `yaml:"translation"`
	Rotation    [4]float64 `yaml:"rotation,omitempty"`
}

func (t *transformDoc) mat4() mmath.Mat4 {
	return mmath.NewMat4FromTRS(vec3(t.Translation), quaternion(t.Rotation), mmath.OneVec3())
}

type rigidBodyDoc struct {
	Name             string     `yaml:"name"`
	Shape            string     `yaml:"shape"`
	Size             [3]float64 `yaml:"size"`
	Mode             string     `yaml:"mode"`
	CollisionGroup   int        `yaml:"collision_group"`
	CollisionIgnores []int      `yaml:"collision_ignores,omitempty"`
	Mass             float64    `yaml:"mass"`
	Friction         float64    `yaml:"friction,omitempty"`
	Restitution      float64    `yaml:"restitution,omitempty"`
	Bone             string     `yaml:"bone,omitempty"`
	Translation      [3]float64 `yaml:"translation"`
	Rotation         [4]float64 `yaml:"rotation,omitempty"`
	Unbound          bool       `yaml:"unbound,omitempty"`
}

type jointDoc struct {
	Name          string     `yaml:"name"`
	RigidBody1    string     `yaml:"rigid_body1"`
	RigidBody2    string     `yaml:"rigid_body2"`
	Translation   [3]float64 `yaml:"translation"`
	Rotation      [4]float64 `yaml:"rotation,omitempty"`
	LinearLower   [3]float64 `yaml:"linear_lower,omitempty"`
	LinearUpper   [3]float64 `yaml:"linear_upper,omitempty"`
	AngularLower  [3]float64 `yaml:"angular_lower,omitempty"`
	AngularUpper  [3]float64 `yaml:"angular_upper,omitempty"`
	LinearSpring  [3]float64 `yaml:"linear_spring,omitempty"`
	AngularSpring [3]float64 `yaml:"angular_spring,omitempty"`
	Unbound       bool       `yaml:"unbound,omitempty"`
}

// snapshotDoc は保存時のシーン状態を表す。
type snapshotDoc struct {
	Name        string         `yaml:"name"`
	Built       bool           `yaml:"built"`
	Armature    armatureDoc    `yaml:"armature"`
	RigidBodies []rigidBodyDoc `yaml:"rigid_bodies"`
	Joints      []jointDoc     `yaml:"joints"`
}

// snapshotScene は現在のシーン状態をドキュメントへ写し取る。
func snapshotScene(scene *scenegraph.Scene, root *model.Object) *snapshotDoc {
	doc := &snapshotDoc{Name: root.Name}
	if built, ok := root.Props[model.IsBuiltPropKey].(bool); ok {
		doc.Built = built
	}

	for _, obj := range scene.ObjectsUnder(root) {
		switch {
		case obj.Type == model.TypeArmature && obj.Armature != nil:
			for _, bone := range obj.Armature.Bones() {
				bd := boneDoc{Name: bone.Name, Rest: transformFromMat4(bone.RestMatrix)}
				pose := transformFromMat4(bone.PoseMatrix)
				bd.Pose = &pose
				doc.Armature.Bones = append(doc.Armature.Bones, bd)
			}
		case model.IsRigidBodyObject(obj) && obj.RigidBody != nil:
			rb := obj.RigidBody
			rd := rigidBodyDoc{
				Name:           obj.Name,
				Shape:          string(rb.Shape),
				Mode:           modeName(rb.Mode),
				CollisionGroup: rb.CollisionGroup,
				Mass:           rb.Mass,
				Friction:       rb.Friction,
				Restitution:    rb.Restitution,
				Bone:           rb.Bone,
				Translation:    vec3Doc(obj.Translation),
				Rotation:       quaternionDoc(obj.Rotation),
				Unbound:        !rb.Bound,
			}
			if size, err := model.GetRigidBodySize(obj); err == nil {
				rd.Size = vec3Doc(size)
			}
			for g := 0; g < model.CollisionGroupCount; g++ {
				if rb.CollisionGroupMask[g] {
					rd.CollisionIgnores = append(rd.CollisionIgnores, g)
				}
			}
			doc.RigidBodies = append(doc.RigidBodies, rd)
		case model.IsJointObject(obj) && obj.Joint != nil:
			jc := obj.Joint
			jd := jointDoc{
				Name:          obj.Name,
				Translation:   vec3Doc(obj.Translation),
				Rotation:      quaternionDoc(obj.Rotation),
				LinearLower:   vec3Doc(jc.LinearLowerLimit),
				LinearUpper:   vec3Doc(jc.LinearUpperLimit),
				AngularLower:  vec3Doc(jc.AngularLowerLimit),
				AngularUpper:  vec3Doc(jc.AngularUpperLimit),
				LinearSpring:  vec3Doc(jc.LinearSpring),
				AngularSpring: vec3Doc(jc.AngularSpring),
				Unbound:       !jc.Bound,
			}
			if jc.Object1 != nil {
				jd.RigidBody1 = jc.Object1.Name
			}
			if jc.Object2 != nil {
				jd.RigidBody2 = jc.Object2.Name
			}
			doc.Joints = append(doc.Joints, jd)
		}
	}
	return doc
}

func transformFromMat4(m mmath.Mat4) transformDoc {
	t, r, _ := m.Decompose()
	return transformDoc{Translation: vec3Doc(t), Rotation: quaternionDoc(r)}
}

func vec3Doc(v mmath.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func quaternionDoc(q mmath.Quaternion) [4]float64 {
	return [4]float64{q.Real, q.Imag, q.Jmag, q.Kmag}
}
