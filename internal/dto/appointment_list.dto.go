package dto

type AppointmentListDTO struct {
	ID            uint    `json:"id"`
	Date          string  `json:"date"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	Status        string  `json:"status"`
	ClientName    string  `json:"client_name"`
	Professional  string  `json:"professional"`
	ServicesLabel string  `json:"services_label"`
	Total         float64 `json:"total"`
}

// DayWindowDTO é a janela de funcionamento resolvida do dia, para a grade
// do painel desenhar as regiões aberta/fechada.
type DayWindowDTO struct {
	Closed bool   `json:"closed"`
	Open   string `json:"open"`
	Close  string `json:"close"`
}

type DayScheduleDTO struct {
	Date         string               `json:"date"`
	Window       DayWindowDTO         `json:"window"`
	Appointments []AppointmentListDTO `json:"appointments"`
}
