package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// コンテナ壁面の熱伝達率, W/m2 K
const h_wall = 5.0

// 乱流の助走区間長さの係数（水力直径に対する倍数）, -
const entry_length_turbulent_factor = 10.0

// ゾーン入口の境界条件（上流ゾーンの出口状態、先頭ゾーンでは給気状態）
type InletState struct {
	theta_a float64 // 空気温度, degree C
	x_a     float64 // 絶対湿度, kg/kgDA
	p       float64 // 静圧, Pa
}

// 1ゾーン1ステップの計算診断量
type ZoneDiagnostics struct {
	re     float64 // レイノルズ数, -
	ti     float64 // 乱流強度, -
	q_resp float64 // 呼吸熱, W
	q_cv   float64 // 対流熱流, W
	q_evap float64 // 蒸散熱, W
	m_evap float64 // 蒸散水分流束, kg/s
	eta    float64 // 冷却効率, -
}

/*
1ゾーンの状態を1ステップ進める。

    Args:
        st: ステップnにおけるゾーンの状態（書き換えない）
        inlet: 入口境界条件（上流ゾーンの出口状態）
        dt: 時間刻み, s
        zones: 空間格子
        idx: ゾーンの3軸インデックス
        gmt: 幾何形状の計算条件
        bdr: 境界条件
        cmd: 品目の物性値
        pkg: 包装材の物性値
        tcpi: 乱流冷却性能指標, -
        theta_coil: 冷却コイル温度, degree C
        fluc: 乱流変動の正規乱数生成器（nil の場合は変動なし）

    Returns:
        ステップn+1におけるゾーンの状態、計算診断量、エラー

    Notes:
        前進オイラー法による陽的時間積分。
            (1) 流動量の計算
            (2) 呼吸・対流・蒸散の熱および水分流束の計算
            (3) 産品温度・含水率、空気温度・湿度、流速の積分
            (4) 密度・質量流量・蓄熱量・流れの発達係数の再計算
            (5) 飽和湿度・含水率・温度範囲へのクランプ
        非有限値が生じた場合は当該ステップの致命的エラーとして返す。
*/
func run_tick_zone(
	st ZoneState,
	inlet InletState,
	dt float64,
	zones *Zones,
	idx ZoneIndex,
	gmt *GeometryConfig,
	bdr *BoundaryConfig,
	cmd *Commodity,
	pkg *Packaging,
	tcpi float64,
	theta_coil float64,
	fluc *distuv.Normal,
) (ZoneState, ZoneDiagnostics, error) {
	if !(dt > 0.0) || math.IsInf(dt, 0) {
		return ZoneState{}, ZoneDiagnostics{}, fmt.Errorf("ゾーン %v において時間刻み %f s が不正である", idx, dt)
	}

	eps := get_eps()

	// ---- (1) 流動量 ----

	mu := get_mu_a(st.theta_a)
	re := get_re(st.rho, st.v, zones.d_h, mu)
	ti := get_ti(re)
	nu := get_nu(re, get_pr_a(st.theta_a))
	h_cv := get_h_cv(nu, get_lambda_a(st.theta_a), zones.d_h)
	f := get_friction_factor(math.Max(re, eps), pkg.RelRough)

	// ---- (2) 熱・水分流束 ----

	q_resp := get_q_resp(st.theta_p, zones.m_p, cmd)

	h_eff := get_h_eff(h_cv, zones.f_pos_js[idx.J], tcpi, ti, fluc)
	q_cv := get_q_cv(h_eff, zones.a_surf, st.theta_p, st.theta_a)

	vpd := get_vpd(st.theta_p, cmd.AW, st.x_a, st.p)
	m_evap := get_m_evap(vpd, st.theta_p, zones.a_surf, cmd)
	q_evap := get_q_evap(m_evap, st.theta_p)

	// ---- (3) 前進オイラー積分 ----

	// 産品温度, degree C
	// 産品と包装材をまとめた熱容量に対する収支 dE/dt = q_resp - q_cv - q_evap
	cap_p := math.Max(zones.m_p*cmd.CSpec+zones.m_pack*pkg.CPack, eps)
	theta_p_new := st.theta_p + (q_resp-q_cv-q_evap)/cap_p*dt

	// 産品含水率, kg/kg(乾物)
	w_p_new := st.w_p - m_evap/math.Max(zones.m_p, eps)*dt

	// 空気温度, degree C
	// 対流熱取得、上流からの移流、壁面との熱交換による収支
	a_wall := zones.perimeter * zones.dx
	cap_a := math.Max(st.rho*zones.v_air*get_c_a(), eps)
	q_adv := st.m_dot * get_c_a() * (inlet.theta_a - st.theta_a)
	q_wall := h_wall * a_wall * (bdr.ThetaWall - st.theta_a)
	theta_a_new := st.theta_a + (q_cv+q_adv+q_wall)/cap_a*dt

	// 空気絶対湿度, kg/kgDA
	m_air := math.Max(st.rho*zones.v_air, eps)
	x_a_new := st.x_a + (m_evap+st.m_dot*(inlet.x_a-st.x_a))/m_air*dt

	// 流速, m/s
	// 圧力勾配による駆動力と Darcy-Weisbach 摩擦力の運動量収支。
	// 摩擦項には圧力損失と同じ積載による抵抗増加を用いる。
	dp_dx := (bdr.PInlet - bdr.POutlet) / (float64(zones.n_zone) * zones.dx)
	zeta_x := f * (1.0 + resistance_packing_factor*zones.phi_pack/(1.0-zones.phi_pack)) /
		math.Max(zones.d_h, eps)
	accel := dp_dx/math.Max(st.rho, eps) - zeta_x*st.v*math.Abs(st.v)/2.0
	v_new := st.v + accel*dt

	// ---- (5) クランプ（一部は再計算に先立って行う） ----

	theta_p_new = math.Min(math.Max(theta_p_new, gmt.ThetaMin), gmt.ThetaMax)
	theta_a_new = math.Min(math.Max(theta_a_new, gmt.ThetaMin), gmt.ThetaMax)
	w_p_new = math.Min(math.Max(w_p_new, 0.0), 1.0)

	// ---- (4) 状態量の再計算 ----

	// 静圧, Pa（入口静圧からゾーン通過の圧力損失を差し引く）
	delta_p := get_delta_p(f, zones.dx, zones.d_h, zones.phi_pack, st.rho, v_new)
	p_new := inlet.p - delta_p

	// 飽和絶対湿度によるクランプ, kg/kgDA
	x_s, err := get_x_s(theta_a_new, p_new)
	if err != nil {
		return ZoneState{}, ZoneDiagnostics{}, fmt.Errorf("ゾーン %v: %w", idx, err)
	}
	x_a_new = math.Min(math.Max(x_a_new, 0.0), x_s)

	// 空気密度, kg/m3（理想気体の状態方程式による再計算）
	rho_new := get_rho_a(theta_a_new, x_a_new, p_new)

	// 質量流量, kg/s
	m_dot_new := rho_new * v_new * zones.a_flow

	// 蓄熱量, J
	e_new := rho_new * zones.v_air * get_c_a() * theta_a_new

	// 流れの発達係数, -
	// 助走区間長さは層流・乱流で切り替え、給気口からの距離に対する指数関数的な漸近とする。
	var l_entry float64
	if re < re_laminar {
		l_entry = 0.05 * re * zones.d_h
	} else {
		l_entry = entry_length_turbulent_factor * zones.d_h
	}
	f_dev_new := 1.0 - math.Exp(-zones.dist_is[idx.I]/math.Max(l_entry, eps))

	new_state := ZoneState{
		theta_p: theta_p_new,
		w_p:     w_p_new,
		theta_a: theta_a_new,
		x_a:     x_a_new,
		v:       v_new,
		p:       p_new,
		rho:     rho_new,
		m_dot:   m_dot_new,
		e:       e_new,
		f_dev:   f_dev_new,
	}

	// ---- 非有限値の検査 ----

	quantities := map[string]float64{
		"theta_p": new_state.theta_p,
		"w_p":     new_state.w_p,
		"theta_a": new_state.theta_a,
		"x_a":     new_state.x_a,
		"v":       new_state.v,
		"p":       new_state.p,
		"rho":     new_state.rho,
		"m_dot":   new_state.m_dot,
		"e":       new_state.e,
		"f_dev":   new_state.f_dev,
	}
	for name, val := range quantities {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ZoneState{}, ZoneDiagnostics{}, fmt.Errorf(
				"ゾーン %v において %s が非有限値 %f となった", idx, name, val)
		}
	}

	// 冷却効率, -
	// 達成可能な最大温度差（産品温度とコイル温度の差）に対する、
	// 実際に達成された温度差（産品温度と空気温度の差）の比。
	eta := (st.theta_p - theta_a_new) / math.Max(st.theta_p-theta_coil, eps)
	eta = math.Min(math.Max(eta, 0.0), 1.0)

	diag := ZoneDiagnostics{
		re:     re,
		ti:     ti,
		q_resp: q_resp,
		q_cv:   q_cv,
		q_evap: q_evap,
		m_evap: m_evap,
		eta:    eta,
	}

	return new_state, diag, nil
}
