package main

import (
	"fmt"
	"math"
)

// 層流から遷移域への臨界レイノルズ数, -
const re_laminar = 2300.0

// 遷移域から乱流域への臨界レイノルズ数, -
const re_turbulent = 10000.0

// 積載物による乱流促進係数, -
// ダクト流の経験式 0.16 Re^(-1/8) に対する補正であり物理法則ではなく調整定数である。
const ti_obstacle_enhancement = 1.2

// 積載物による濡れぶち長さの増加係数, -
const perimeter_packing_factor = 3.0

// 積載物による流動抵抗の増加係数, -
const resistance_packing_factor = 2.5

/*
有効流路断面積を計算する。

    Args:
        a_gross: 総断面積, m2
        phi_pack: 積載率, -

    Returns:
        有効流路断面積, m2

    Notes:
        積載率が [0, 1) の範囲外の場合、または断面積が正とならない場合はエラーとする。
*/
func get_a_flow(a_gross float64, phi_pack float64) (float64, error) {
	if phi_pack < 0.0 || phi_pack >= 1.0 {
		return 0.0, fmt.Errorf("積載率 %f は [0, 1) の範囲外である", phi_pack)
	}

	a_flow := a_gross * (1.0 - phi_pack)

	if a_flow <= 0.0 {
		return 0.0, fmt.Errorf("有効流路断面積 %f m2 が正とならない（総断面積 %f m2）", a_flow, a_gross)
	}

	return a_flow, nil
}

/*
濡れぶち長さを計算する。

    Args:
        w: 流路幅, m
        h: 流路高さ, m
        phi_pack: 積載率, -

    Returns:
        濡れぶち長さ, m

    Notes:
        積載物の表面積により濡れぶち長さは増加する。
*/
func get_wetted_perimeter(w float64, h float64, phi_pack float64) float64 {
	return 2.0 * (w + h) * (1.0 + perimeter_packing_factor*phi_pack)
}

/*
水力直径を計算する。

    Args:
        a_flow: 有効流路断面積, m2
        perimeter: 濡れぶち長さ, m

    Returns:
        水力直径, m
*/
func get_d_h(a_flow float64, perimeter float64) float64 {
	return 4.0 * a_flow / math.Max(perimeter, get_eps())
}

/*
流速を計算する。

    Args:
        m_dot: 質量流量, kg/s
        rho: 空気密度, kg/m3
        a_flow: 有効流路断面積, m2

    Returns:
        流速, m/s
*/
func get_v(m_dot float64, rho float64, a_flow float64) float64 {
	return m_dot / math.Max(rho*a_flow, get_eps())
}

/*
レイノルズ数を計算する。

    Args:
        rho: 空気密度, kg/m3
        v: 流速, m/s
        d_h: 水力直径, m
        mu: 粘性係数, Pa s

    Returns:
        レイノルズ数, -
*/
func get_re(rho float64, v float64, d_h float64, mu float64) float64 {
	return rho * math.Abs(v) * d_h / math.Max(mu, get_eps())
}

/*
乱流強度を計算する。

    Args:
        re: レイノルズ数, -

    Returns:
        乱流強度, -

    Notes:
        ダクト流の経験式 0.16 Re^(-1/8) に積載物による乱流促進係数を乗じる。
*/
func get_ti(re float64) float64 {
	if re <= 0.0 {
		return 0.0
	}

	return 0.16 * math.Pow(re, -1.0/8.0) * ti_obstacle_enhancement
}

/*
ヌセルト数を計算する。

    Args:
        re: レイノルズ数, -
        pr: プラントル数, -

    Returns:
        ヌセルト数, -

    Notes:
        レイノルズ数の領域により相関式を切り替える。
            Re < 2300: 層流（一定値 3.66）
            2300 <= Re < 10000: 遷移域（Gnielinski の式）
            Re >= 10000: 乱流（Dittus-Boelter の式）
*/
func get_nu(re float64, pr float64) float64 {
	if re < re_laminar {
		// 層流（等温壁・円管の理論値）
		return 3.66
	} else if re < re_turbulent {
		// 遷移域
		f := get_friction_factor(re, 0.0)
		nu := (f / 8.0) * (re - 1000.0) * pr /
			(1.0 + 12.7*math.Sqrt(f/8.0)*(math.Pow(pr, 2.0/3.0)-1.0))
		// 層流の下限値を下回らないようにする
		return math.Max(nu, 3.66)
	} else {
		// 乱流
		return 0.023 * math.Pow(re, 0.8) * math.Pow(pr, 0.4)
	}
}

/*
対流熱伝達率を計算する。

    Args:
        nu: ヌセルト数, -
        lambda_a: 空気の熱伝導率, W/m K
        d_h: 水力直径, m

    Returns:
        対流熱伝達率, W/m2 K
*/
func get_h_cv(nu float64, lambda_a float64, d_h float64) float64 {
	return nu * lambda_a / math.Max(d_h, get_eps())
}

/*
管摩擦係数を計算する。

    Args:
        re: レイノルズ数, -
        rel_rough: 相対粗度, -

    Returns:
        管摩擦係数, -

    Notes:
        Re < 2300: 層流 64/Re
        Re >= 2300 かつ相対粗度ゼロ: Blasius の式
        Re >= 2300 かつ相対粗度が正: Colebrook-White 式の不動点反復
            （最大50回、収束しない場合は Blasius の式にフォールバックする）
*/
func get_friction_factor(re float64, rel_rough float64) float64 {
	if re < re_laminar {
		return 64.0 / math.Max(re, get_eps())
	}

	// Blasius の式（平滑管）
	f_blasius := 0.316 * math.Pow(re, -0.25)

	if rel_rough <= 0.0 {
		return f_blasius
	}

	// Colebrook-White 式の不動点反復
	f := f_blasius
	for i := 0; i < 50; i++ {
		rhs := -2.0 * math.Log10(rel_rough/3.7+2.51/(re*math.Sqrt(f)))
		f_new := 1.0 / (rhs * rhs)

		if math.Abs(f_new-f) < 1.0e-8 {
			return f_new
		}

		f = f_new
	}

	// 収束しなかった場合
	return f_blasius
}

/*
ゾーン通過に伴う圧力損失を計算する。

    Args:
        f: 管摩擦係数, -
        dx: 流れ方向のゾーン長さ, m
        d_h: 水力直径, m
        phi_pack: 積載率, -
        rho: 空気密度, kg/m3
        v: 流速, m/s

    Returns:
        圧力損失, Pa

    Notes:
        抵抗係数は積載率の増加と共に増加する。
*/
func get_delta_p(f float64, dx float64, d_h float64, phi_pack float64, rho float64, v float64) float64 {
	// 抵抗係数, -
	zeta := f * dx / math.Max(d_h, get_eps()) * (1.0 + resistance_packing_factor*phi_pack/(1.0-phi_pack))

	// 動圧, Pa
	p_dyn := 0.5 * rho * v * v

	return zeta * p_dyn
}
