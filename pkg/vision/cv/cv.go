// Package cv 提供基于 OpenCV 的相似度计算
//
// 与模板尺寸相同的截图区域使用 TM_CCOEFF_NORMED 计算置信度，
// 尺寸不一致时直接返回 -1，不做匹配。
//
// 基本用法:
//
//	scorer := cv.CcoeffScorer{}
//	confidence := scorer.Score(crop, template)
//	if confidence > 0.9 {
//	    fmt.Println("匹配成功")
//	}
package cv
