package schedule

import (
	"time"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
)

// Janela de atendimento usada quando a clínica não configurou a sua.
const (
	DefaultOpeningHour = 8
	DefaultClosingHour = 18
)

// BusinessWindow devolve a janela [opening, closing) da clínica.
func BusinessWindow(clinic *models.Clinic) (int, int) {
	opening := clinic.OpeningHour
	closing := clinic.ClosingHour
	if opening <= 0 && closing <= 0 {
		return DefaultOpeningHour, DefaultClosingHour
	}
	if closing <= opening {
		return DefaultOpeningHour, DefaultClosingHour
	}
	return opening, closing
}

// ValidateStart aplica, em ordem, as regras de criação sobre o horário de
// início. A primeira regra violada aborta com o erro de negócio dela.
//
//  1. início estritamente no futuro (início == agora é rejeitado);
//  2. antecedência mínima da clínica, quando configurada;
//  3. hora de início dentro da janela [opening, closing) — 08:00 entra,
//     18:00 não.
func ValidateStart(clinic *models.Clinic, start, now time.Time) error {
	if !start.After(now) {
		return httperr.ErrBusiness("in_the_past")
	}

	if adv := clinic.MinAdvanceMinutes; adv > 0 {
		if start.Before(now.Add(time.Duration(adv) * time.Minute)) {
			return httperr.ErrBusiness("too_soon")
		}
	}

	opening, closing := BusinessWindow(clinic)
	if start.Hour() < opening || start.Hour() >= closing {
		return httperr.ErrBusiness("outside_business_hours")
	}

	return nil
}
