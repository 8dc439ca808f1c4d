package main

import (
	"fmt"
	"math"
)

// Magnus式の係数
const magnus_a = 17.625
const magnus_b = 243.04 // degree C
const magnus_c = 610.94 // Pa

/*
飽和水蒸気圧を計算する。

    Args:
        theta: 空気温度, degree C

    Returns:
        飽和水蒸気圧, Pa

    Notes:
        Magnus式による。
*/
func get_p_vs(theta float64) float64 {
	if theta < get_theta_zero() {
		panic(fmt.Sprintf("温度 %f degree C は絶対零度 %f degree C を下回っている", theta, get_theta_zero()))
	}

	return magnus_c * math.Exp(magnus_a*theta/(theta+magnus_b))
}

/*
飽和絶対湿度を計算する。

    Args:
        theta: 空気温度, degree C
        p: 全圧, Pa

    Returns:
        飽和絶対湿度, kg/kgDA

    Notes:
        飽和水蒸気圧が全圧以上となる過飽和領域では定義されないためエラーとする。
*/
func get_x_s(theta float64, p float64) (float64, error) {
	p_vs := get_p_vs(theta)

	if p_vs >= p {
		return 0.0, fmt.Errorf(
			"飽和水蒸気圧 %f Pa が全圧 %f Pa 以上となった（温度 %f degree C）", p_vs, p, theta)
	}

	return 0.622 * p_vs / (p - p_vs), nil
}

/*
絶対湿度から水蒸気圧を計算する。

    Args:
        x: 絶対湿度, kg/kgDA
        p: 全圧, Pa

    Returns:
        水蒸気圧, Pa
*/
func get_p_v(x float64, p float64) float64 {
	return p * x / (x + 0.622)
}

/*
露点温度を計算する。

    Args:
        x: 絶対湿度, kg/kgDA
        p: 全圧, Pa

    Returns:
        露点温度, degree C

    Notes:
        Magnus式の逆算による。
*/
func get_theta_dew(x float64, p float64) float64 {
	// 水蒸気圧, Pa
	p_v := math.Max(get_p_v(x, p), get_eps())

	gamma := math.Log(p_v / magnus_c)

	return magnus_b * gamma / (magnus_a - gamma)
}

/*
相対湿度を計算する。

    Args:
        p_v: 水蒸気圧, Pa
        p_vs: 飽和水蒸気圧, Pa

    Returns:
        相対湿度, %
*/
func get_h(p_v, p_vs float64) float64 {
	return p_v / p_vs * 100.0
}
