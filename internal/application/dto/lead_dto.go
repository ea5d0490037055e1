package dto

// UpdateLeadRequest cuerpo de PUT /api/leads.
// Agenda nil = no tocar; "" o "DELETE" = borrar; otro valor = fecha a fijar.
type UpdateLeadRequest struct {
	ID     string  `json:"id"`
	Stage  string  `json:"etapa,omitempty"`
	Agenda *string `json:"agenda,omitempty"`
	Note   string  `json:"nota,omitempty"`
}
