package metadata

import "regexp"

// fieldPattern pairs a compiled pattern with the capture group that holds the
// value. Patterns are tried in order and the first match wins, so plain-text
// layouts come first, rich markup second, frontmatter layouts last.
type fieldPattern struct {
	re    *regexp.Regexp
	group int
}

func pat(expr string) fieldPattern { return fieldPattern{re: regexp.MustCompile(expr), group: 1} }

const uspdExpr = `([A-ZА-ЯЁ]{2}\.ECO\.[0-9]{5}-[0-9]{2})`

// extractionOrder fixes the field iteration order so Extract is
// deterministic regardless of map layout.
var extractionOrder = []string{
	FieldTitle,
	FieldComponentName,
	FieldCID,
	FieldUSPD,
	FieldDescription,
	FieldUseCategory,
	FieldType,
	FieldVersion,
	FieldTags,
	FieldRegistryID,
	FieldRegistryURL,
}

var fieldPatterns = map[string][]fieldPattern{
	FieldTitle: {
		pat(`(?m)^#\s+(.+?)\s*$`),
		pat(`(?m)^\*\*(?:Наименование|Название)\*\*[:\s]*(.+?)\s*$`),
		pat(`(?m)^title:\s*['"]?(.+?)['"]?\s*$`),
	},
	FieldComponentName: {
		pat(`(?m)^\s*(?:Наименование компонента|Компонент|Component name|Component)\s*[:：]\s*(.+?)\s*$`),
		pat(`(?m)^\*\*(?:Компонент|Component)\*\*[:\s]*(.+?)\s*$`),
		pat(`(?m)^componentName:\s*['"]?(.+?)['"]?\s*$`),
	},
	FieldCID: {
		pat(`(?mi)^\s*CID\s*[:：]\s*([0-9a-f]{32})\b`),
		pat(`(?mi)\*\*CID\*\*[:\s]*([0-9a-f]{32})\b`),
		pat(`(?mi)\bCID\b[^0-9a-f]{0,10}([0-9a-f]{32})\b`),
	},
	FieldUSPD: {
		pat(`(?m)^\s*(?:Обозначение|Децимальный номер|Designation)\s*[:：]\s*` + uspdExpr),
		pat(`\*\*` + uspdExpr + `\*\*`),
		pat(`(?m)^documentUspd:\s*['"]?` + uspdExpr + `['"]?\s*$`),
		pat(uspdExpr),
	},
	FieldDescription: {
		pat(`(?m)^\s*(?:Краткое описание|Описание|Short description|Description)\s*[:：]\s*(.+?)\s*$`),
		pat(`(?m)^\*\*(?:Описание|Description)\*\*[:\s]*(.+?)\s*$`),
		pat(`(?m)^description:\s*['"]?(.+?)['"]?\s*$`),
	},
	FieldUseCategory: {
		pat(`(?m)^\s*(?:Категория применения|Use category)\s*[:：]\s*(.+?)\s*$`),
		pat(`(?m)^useCategory:\s*['"]?(.+?)['"]?\s*$`),
	},
	FieldType: {
		pat(`(?m)^\s*(?:Тип компонента|Тип|Type)\s*[:：]\s*(.+?)\s*$`),
		pat(`(?m)^type:\s*['"]?(.+?)['"]?\s*$`),
	},
	FieldVersion: {
		pat(`(?m)^\s*(?:Версия|Version)\s*[:：]\s*([0-9][\w.\-]*)\s*$`),
		pat(`(?m)^\*\*(?:Версия|Version)\*\*[:\s]*([0-9][\w.\-]*)\s*$`),
		pat(`(?m)^version:\s*['"]?([0-9][\w.\-]*)['"]?\s*$`),
	},
	FieldTags: {
		pat(`(?m)^\s*(?:Теги|Ключевые слова|Tags|Keywords)\s*[:：]\s*(.+?)\s*$`),
		pat(`(?m)^tags:\s*\[?(.+?)\]?\s*$`),
	},
	FieldRegistryID: {
		pat(`(?m)^\s*(?:Номер в реестре|Реестровый номер|Registry id)\s*[:：]\s*(\S+)\s*$`),
		pat(`(?m)^registryId:\s*['"]?(\S+?)['"]?\s*$`),
	},
	FieldRegistryURL: {
		pat(`(?m)^\s*(?:Ссылка в реестре|Registry url)\s*[:：]\s*(https?://\S+)\s*$`),
		pat(`(?m)^registryUrl:\s*['"]?(https?://\S+?)['"]?\s*$`),
	},
}
