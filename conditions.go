package main

import (
	"gonum.org/v1/gonum/mat"
)

/*
1ゾーンの熱力学状態

    ステップごとに丸ごと置き換えられる値レコードであり、更新中の読み書き競合を
    避けるため決して部分的に書き換えない。
*/
type ZoneState struct {
	theta_p float64 // 産品温度, degree C
	w_p     float64 // 産品含水率, kg/kg(乾物)
	theta_a float64 // 空気温度, degree C
	x_a     float64 // 空気絶対湿度, kg/kgDA
	v       float64 // 流速, m/s
	p       float64 // 静圧, Pa
	rho     float64 // 空気密度, kg/m3
	m_dot   float64 // 質量流量, kg/s
	e       float64 // 蓄熱量, J
	f_dev   float64 // 流れの発達係数, - (0-1)
}

/*
ステップnにおける全ゾーンの状態

    フラット配列で保持し、3軸インデックスとの対応は Zones のオフセット計算による。
*/
type Conditions struct {
	zone_states []ZoneState // 全ゾーンの状態, [i*j*k]
}

// ゾーンの状態を取得する。
func (self *Conditions) get(zones *Zones, idx ZoneIndex) ZoneState {
	return self.zone_states[zones.offset(idx)]
}

// 産品温度のベクトルを取得する, degree C, [i*j*k]
func (self *Conditions) theta_p_zs() *mat.VecDense {
	ret := make([]float64, len(self.zone_states))
	for i, st := range self.zone_states {
		ret[i] = st.theta_p
	}
	return mat.NewVecDense(len(ret), ret)
}

// 空気温度のベクトルを取得する, degree C, [i*j*k]
func (self *Conditions) theta_a_zs() *mat.VecDense {
	ret := make([]float64, len(self.zone_states))
	for i, st := range self.zone_states {
		ret[i] = st.theta_a
	}
	return mat.NewVecDense(len(ret), ret)
}

// 空気絶対湿度のベクトルを取得する, kg/kgDA, [i*j*k]
func (self *Conditions) x_a_zs() *mat.VecDense {
	ret := make([]float64, len(self.zone_states))
	for i, st := range self.zone_states {
		ret[i] = st.x_a
	}
	return mat.NewVecDense(len(ret), ret)
}

// 流速のベクトルを取得する, m/s, [i*j*k]
func (self *Conditions) v_zs() *mat.VecDense {
	ret := make([]float64, len(self.zone_states))
	for i, st := range self.zone_states {
		ret[i] = st.v
	}
	return mat.NewVecDense(len(ret), ret)
}

/*
初期状態を生成する。

    Args:
        zones: 空間格子
        gmt: 幾何形状の計算条件
        bdr: 境界条件
        cmd: 品目の物性値

    Returns:
        ステップ0における全ゾーンの状態

    Notes:
        初期温度は産品・空気とも設定値とする。
        初期湿度は初期温度における飽和絶対湿度の90%とする。
        静圧は給気圧力から排気圧力まで流れ方向に線形に分布させる。
*/
func initialize_conditions(zones *Zones, gmt *GeometryConfig, bdr *BoundaryConfig, cmd *Commodity) (*Conditions, error) {
	n := zones.n_total()

	// 初期絶対湿度, kg/kgDA
	x_s0, err := get_x_s(gmt.ThetaInit, bdr.PInlet)
	if err != nil {
		return nil, err
	}
	x0 := x_s0 * 0.9

	// 初期流速, m/s
	// 運動量収支により圧力勾配から加速されるため、微小値から開始する。
	v0 := 0.01

	zone_states := make([]ZoneState, n)
	for off := 0; off < n; off++ {
		idx := zones.index(off)

		// 静圧, Pa（流れ方向に線形分布）
		frac := (float64(idx.I) + 0.5) / float64(zones.n_zone)
		p0 := bdr.PInlet + (bdr.POutlet-bdr.PInlet)*frac

		// 空気密度, kg/m3
		rho0 := get_rho_a(gmt.ThetaInit, x0, p0)

		zone_states[off] = ZoneState{
			theta_p: gmt.ThetaInit,
			w_p:     cmd.WInit,
			theta_a: gmt.ThetaInit,
			x_a:     x0,
			v:       v0,
			p:       p0,
			rho:     rho0,
			m_dot:   rho0 * v0 * zones.a_flow,
			e:       rho0 * zones.v_air * get_c_a() * gmt.ThetaInit,
			f_dev:   0.0,
		}
	}

	return &Conditions{zone_states: zone_states}, nil
}
