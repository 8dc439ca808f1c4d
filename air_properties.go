package main

import (
	"fmt"
	"math"
)

/*
湿り空気の密度を計算する。

    Args:
        theta: 空気温度, degree C
        x: 絶対湿度, kg/kgDA
        p: 全圧, Pa

    Returns:
        湿り空気の密度, kg/m3

    Notes:
        理想気体の状態方程式による。
        水蒸気の分圧を考慮した湿り空気の密度とする。
        絶対零度未満の温度が指定された場合は物理的にあり得ないため panic とする。
*/
func get_rho_a(theta float64, x float64, p float64) float64 {
	if theta < get_theta_zero() {
		panic(fmt.Sprintf("温度 %f degree C は絶対零度 %f degree C を下回っている", theta, get_theta_zero()))
	}

	// 絶対温度, K
	t := theta + 273.15

	return p / (get_r_da() * t) * (1.0 + x) / (1.0 + 1.608*x)
}

/*
空気の粘性係数を計算する。

    Args:
        theta: 空気温度, degree C

    Returns:
        粘性係数, Pa s

    Notes:
        サザランドの式による。
*/
func get_mu_a(theta float64) float64 {
	if theta < get_theta_zero() {
		panic(fmt.Sprintf("温度 %f degree C は絶対零度 %f degree C を下回っている", theta, get_theta_zero()))
	}

	// 絶対温度, K
	t := theta + 273.15

	// 基準温度, K
	const t0 = 273.15

	// 基準温度における粘性係数, Pa s
	const mu0 = 1.716e-5

	// サザランド定数, K
	const s = 110.4

	return mu0 * math.Pow(t/t0, 1.5) * (t0 + s) / (t + s)
}

/*
空気の熱伝導率を計算する。

    Args:
        theta: 空気温度, degree C

    Returns:
        熱伝導率, W/m K

    Notes:
        0℃における値 0.0241 W/m K に対する温度の一次補正とする。
*/
func get_lambda_a(theta float64) float64 {
	if theta < get_theta_zero() {
		panic(fmt.Sprintf("温度 %f degree C は絶対零度 %f degree C を下回っている", theta, get_theta_zero()))
	}

	return 0.0241 + 7.0e-5*theta
}

/*
空気の温度拡散率を計算する。

    Args:
        theta: 空気温度, degree C
        x: 絶対湿度, kg/kgDA
        p: 全圧, Pa

    Returns:
        温度拡散率, m2/s
*/
func get_alpha_a(theta float64, x float64, p float64) float64 {
	return get_lambda_a(theta) / (get_rho_a(theta, x, p) * get_c_a())
}

/*
空気のプラントル数を計算する。

    Args:
        theta: 空気温度, degree C

    Returns:
        プラントル数, -
*/
func get_pr_a(theta float64) float64 {
	return get_mu_a(theta) * get_c_a() / get_lambda_a(theta)
}

/*
水の蒸発潜熱を計算する。

    Args:
        theta: 温度, degree C

    Returns:
        蒸発潜熱, J/kg

    Notes:
        0℃基準値に対する温度の一次補正とする。
*/
func get_l_wtr(theta float64) float64 {
	return get_l_wtr_ref() - 2361.0*theta
}
