package template

// Template type tags sent by the bot server
const (
	TagQuickReplies = "quick_replies"
	TagButton       = "button"
	TagList         = "list"
	TagCarousel     = "carousel"
	TagPieChart     = "piechart"
	TagLineChart    = "linechart"
	TagBarChart     = "barchart"
	TagTable        = "table"
	TagMiniTable    = "mini_table"
	TagMenu         = "menu"
	TagPicker       = "picker"

	TableDesignRegular    = "regular"
	TableDesignResponsive = "responsive"
)

// Component type tags, only "template" carries a template type
const (
	ComponentText         = "text"
	ComponentTemplate     = "template"
	ComponentImage        = "image"
	ComponentError        = "error"
	ComponentSessionEnd   = "session_end"
	ComponentShowProgress = "show_progress"
)

// Classify map a template type tag to its kind. tableDesign is only read for the table tag,
// "regular" gives KindTable and any other value, empty included, gives KindResponsiveTable.
// Unknown tags fall back to KindText.
func Classify(templateType, tableDesign string) Kind {
	switch templateType {
	case TagQuickReplies:
		return KindQuickReply
	case TagButton:
		return KindOptions
	case TagList:
		return KindList
	case TagCarousel:
		return KindCarousel
	case TagPieChart, TagLineChart, TagBarChart:
		return KindChart
	case TagTable:
		if tableDesign == TableDesignRegular {
			return KindTable
		}
		return KindResponsiveTable
	case TagMiniTable:
		return KindMiniTable
	case TagMenu:
		return KindMenu
	case TagPicker:
		return KindPicker
	}
	return KindText
}

// ClassifyComponent resolve the kind of a whole component, template components are
// classified by their template type
func ClassifyComponent(componentType, templateType, tableDesign string) Kind {
	switch componentType {
	case ComponentTemplate:
		return Classify(templateType, tableDesign)
	case ComponentImage:
		return KindImage
	case ComponentError:
		return KindError
	case ComponentSessionEnd:
		return KindSessionEnd
	case ComponentShowProgress:
		return KindShowProgress
	}
	return KindText
}
