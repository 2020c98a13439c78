package csvio

import (
	"fmt"
	"io"
)

const templateContent = `资产编号,资产名称,分类,使用人,部门,购入日期,金额,存放位置,状态,备注
ZC001,联想笔记本电脑,电脑设备,张三,技术部,2024-01-15,6999,3楼研发部,在用,
ZC002,办公桌,办公家具,李四,行政部,2024-01-20,1200,2楼办公室,在用,
ZC003,打印机,电子设备,,,2024-02-01,3500,1楼前台,闲置,待分配

# 填写说明：
# 1. 资产编号和资产名称为必填项
# 2. 分类、部门、使用人如果不存在会自动创建
# 3. 状态可选：在用、闲置、维修中、已报废
# 4. 日期格式：YYYY-MM-DD
# 5. 金额为数字，不要包含货币符号
# 6. 以 # 开头的行为注释，导入时会被忽略
`

// WriteTemplate writes the example import document: header, three sample rows
// and inline instructions.
func WriteTemplate(w io.Writer) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}
	_, err := io.WriteString(w, templateContent)
	return err
}
