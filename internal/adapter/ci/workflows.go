package ci

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Workflow 工作流清单项
// 登记每个可被触发的 GitHub Actions workflow 及其必填输入，
// dispatch 前先对照清单校验，避免输入字段悄悄漂移
type Workflow struct {
	Name   string   `yaml:"name"`
	File   string   `yaml:"file"`
	Ref    string   `yaml:"ref"`
	Inputs []string `yaml:"inputs"`
}

// ValidateInputs 校验必填输入是否齐全
func (w Workflow) ValidateInputs(inputs map[string]string) error {
	var missing []string
	for _, name := range w.Inputs {
		if _, ok := inputs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("工作流 %s 缺少输入: %s", w.Name, strings.Join(missing, ", "))
	}
	return nil
}

// Catalog 工作流清单
type Catalog struct {
	workflows map[string]Workflow
}

type catalogFile struct {
	Workflows []Workflow `yaml:"workflows"`
}

// LoadCatalog 从YAML文件加载工作流清单
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取工作流清单失败: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog 解析工作流清单
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("解析工作流清单失败: %w", err)
	}

	if len(file.Workflows) == 0 {
		return nil, fmt.Errorf("工作流清单为空")
	}

	workflows := make(map[string]Workflow, len(file.Workflows))
	for _, wf := range file.Workflows {
		if wf.Name == "" || wf.File == "" {
			return nil, fmt.Errorf("工作流清单项缺少name或file")
		}
		if wf.Ref == "" {
			wf.Ref = "main"
		}
		workflows[wf.Name] = wf
	}

	return &Catalog{workflows: workflows}, nil
}

// Get 按名称查找工作流
func (c *Catalog) Get(name string) (Workflow, bool) {
	wf, ok := c.workflows[name]
	return wf, ok
}
