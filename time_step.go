package main

import (
	"math"
)

// 移流（CFL）条件に対する安全係数, -
const dt_safety_convective = 10.0

// 拡散（Fourier）条件に対する安全係数, -
const dt_safety_diffusive = 20.0

// 質量流量条件に対する安全係数, -
const dt_safety_mass_flow = 10.0

// 時間刻みの上限, s
// 流速がほぼゼロの初期状態では3つの時間スケールが過大となり、
// 運動量の過渡応答を解像できなくなるため上限を設ける。
const dt_max = 0.5

/*
1ゾーンの安定時間刻みを計算する。

    Args:
        dx: 流れ方向のゾーン長さ, m
        v: 流速, m/s
        alpha: 温度拡散率, m2/s
        rho: 空気密度, kg/m3
        a_flow: 有効流路断面積, m2
        m_dot: 質量流量, kg/s

    Returns:
        安定時間刻み, s

    Notes:
        移流（CFL）、拡散（Fourier）、質量流量の3つの時間スケールの最小値とする。
        安全係数は形式的な安定限界（CFL <= 1, Fourier <= 0.5）に対しておよそ
        1桁の余裕を持たせており、性能と引き換えに無条件の安定性を確保する。
*/
func get_delta_t_zone(dx float64, v float64, alpha float64, rho float64, a_flow float64, m_dot float64) float64 {
	eps := get_eps()

	// 移流の時間スケール, s
	dt_cfl := dx / (dt_safety_convective * math.Max(math.Abs(v), eps))

	// 拡散の時間スケール, s
	dt_fourier := dx * dx / (dt_safety_diffusive * math.Max(alpha, eps))

	// 質量流量の時間スケール, s
	dt_mass := rho * a_flow * dx / (dt_safety_mass_flow * math.Max(math.Abs(m_dot), eps))

	return math.Min(math.Min(dt_cfl, math.Min(dt_fourier, dt_mass)), dt_max)
}

/*
システム全体の時間刻みを計算する。

    Args:
        c_n: ステップnにおける全ゾーンの状態
        zones: 空間格子

    Returns:
        時間刻み, s

    Notes:
        陽解法の安定性を全ゾーンで保証するため、全ゾーンの最小値を
        単一の時間刻みとして用いる（ゾーンごとの刻みは用いない）。
        流速・拡散率はステップごとに変化するため、毎ステップ再計算する。
*/
func get_delta_t(c_n *Conditions, zones *Zones) float64 {
	dt := math.Inf(1)

	for _, st := range c_n.zone_states {
		alpha := get_alpha_a(st.theta_a, st.x_a, st.p)

		dt_z := get_delta_t_zone(zones.dx, st.v, alpha, st.rho, zones.a_flow, st.m_dot)

		if dt_z < dt {
			dt = dt_z
		}
	}

	return dt
}
