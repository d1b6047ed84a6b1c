// 指示: miu200521358
package rigging

// BuildJoints は各ジョイントの配置をボーン相対行列から再導出する。
// 行列は端点1の剛体から引き、無ければ端点2で代替する。どちらも
// 解決していないジョイントは作者設定の姿勢を保つ。
func (m *Model) BuildJoints() {
	ctx := m.ensureContext()
	for _, joint := range m.Joints() {
		jc := joint.Joint
		if jc == nil || !jc.Bound {
			continue
		}
		boneMat, ok := ctx.rigidBodyMatrixMap[jc.Object1]
		if !ok {
			boneMat, ok = ctx.rigidBodyMatrixMap[jc.Object2]
			if !ok {
				continue
			}
		}
		t, r, _ := boneMat.Muled(joint.MatrixLocal()).Decompose()
		joint.Translation = t
		joint.Rotation = r
	}
}
