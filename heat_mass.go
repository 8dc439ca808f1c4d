package main

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// 乱流変動による熱伝達の変動係数, -
const h_fluctuation_gain = 0.1

/*
呼吸熱を計算する。

    Args:
        theta_p: 産品温度, degree C
        m_p: 産品質量, kg
        cmd: 品目の物性値

    Returns:
        呼吸熱, W

    Notes:
        アレニウス型の温度依存性 r(theta) = r_ref * exp(k * (theta - theta_ref)) とする。
        r_ref の単位は W/kg（瞬時値）である。
*/
func get_q_resp(theta_p float64, m_p float64, cmd *Commodity) float64 {
	// 単位質量あたり呼吸熱, W/kg
	r := cmd.RRef * math.Exp(cmd.KResp*(theta_p-cmd.ThetaRef))

	return r * m_p
}

/*
有効対流熱伝達率を計算する。

    Args:
        h_cv: 対流熱伝達率, W/m2 K
        f_pos: 鉛直方向の位置係数, -
        tcpi: 乱流冷却性能指標, -
        ti: 乱流強度, -
        fluc: 乱流変動の正規乱数生成器（nil の場合は変動なし）

    Returns:
        有効対流熱伝達率, W/m2 K

    Notes:
        乱流変動項は再現性のため注入された乱数生成器からのみ生成する。
*/
func get_h_eff(h_cv float64, f_pos float64, tcpi float64, ti float64, fluc *distuv.Normal) float64 {
	// 乱流変動項, -
	xi := 0.0
	if fluc != nil {
		xi = fluc.Rand()
	}

	h_eff := h_cv * f_pos * tcpi * (1.0 + h_fluctuation_gain*ti*xi)

	// 変動により負とならないようにする
	return math.Max(h_eff, 0.0)
}

/*
対流熱伝達による産品から空気への熱流を計算する。

    Args:
        h_eff: 有効対流熱伝達率, W/m2 K
        a_surf: 産品表面積, m2
        theta_p: 産品温度, degree C
        theta_a: 空気温度, degree C

    Returns:
        対流熱流, W

    Notes:
        産品から空気へ向かう向きを正とする。
*/
func get_q_cv(h_eff float64, a_surf float64, theta_p float64, theta_a float64) float64 {
	return h_eff * a_surf * (theta_p - theta_a)
}

/*
飽差を計算する。

    Args:
        theta_p: 産品温度, degree C
        a_w: 水分活性, -
        x_a: 空気の絶対湿度, kg/kgDA
        p: 全圧, Pa

    Returns:
        飽差, Pa

    Notes:
        産品表面の水蒸気圧と空気中の水蒸気圧の差であり、蒸散の駆動力となる。
*/
func get_vpd(theta_p float64, a_w float64, x_a float64, p float64) float64 {
	return get_p_vs(theta_p)*a_w - get_p_v(x_a, p)
}

/*
蒸散による水分流束を計算する。

    Args:
        vpd: 飽差, Pa
        theta_p: 産品温度, degree C
        a_surf: 産品表面積, m2
        cmd: 品目の物性値

    Returns:
        蒸散水分流束, kg/s

    Notes:
        飽差が負（結露側）の場合はゼロとする。
*/
func get_m_evap(vpd float64, theta_p float64, a_surf float64, cmd *Commodity) float64 {
	if vpd <= 0.0 {
		return 0.0
	}

	// 絶対温度, K
	t := theta_p + 273.15

	return cmd.HM * a_surf * cmd.FWet * vpd / (get_r_v() * t)
}

/*
蒸散による冷却熱量を計算する。

    Args:
        m_evap: 蒸散水分流束, kg/s
        theta_p: 産品温度, degree C

    Returns:
        蒸散熱, W

    Notes:
        産品から空気へ向かう向きを正とする。
*/
func get_q_evap(m_evap float64, theta_p float64) float64 {
	return m_evap * get_l_wtr(theta_p)
}
