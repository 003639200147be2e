package dto

type TemplateListResponse struct {
	Methods []string `json:"methods"`
}

type TemplateResponse struct {
	TemplateId   string   `json:"template_id"`
	Method       string   `json:"method"`
	Content      string   `json:"content"`
	Placeholders []string `json:"placeholders"`
}
