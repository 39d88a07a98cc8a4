package game

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Targets 目标界面到目标名称（选项模板名）的映射
type Targets map[InterfaceID]string

// NewTargets 创建金血祝颂与方程的目标组合
func NewTargets(boon, equation string) Targets {
	return Targets{SelectGoldenBloodsBoon: boon, SelectEquation: equation}
}

// Names 按目标槽位顺序返回目标名称
func (t Targets) Names() []string {
	out := make([]string, 0, len(Goals))
	for _, g := range Goals {
		out = append(out, t[g])
	}
	return out
}

func (t Targets) String() string {
	parts := make([]string, 0, len(Goals))
	for _, g := range Goals {
		parts = append(parts, fmt.Sprintf("%s: %s", g, t[g]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Validate 每个目标都必须有名称
func (t Targets) Validate() error {
	for _, g := range Goals {
		if t[g] == "" {
			return fmt.Errorf("未设置 [%s] 的目标", g)
		}
	}
	return nil
}

// NormalizeName 规范化用户输入的目标名称（拼音）：只保留字母并转小写，再按纠错表替换
func NormalizeName(name string, homophones map[string]string) string {
	letters := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, name)
	letters = cases.Lower(language.Und).String(letters)

	if fixed, ok := homophones[letters]; ok {
		return fixed
	}
	return letters
}
