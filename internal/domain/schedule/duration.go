package schedule

import (
	"time"

	"github.com/odontosys/clinic-api/internal/httperr"
	"github.com/odontosys/clinic-api/internal/models"
)

// CanPerform diz se o vínculo autoriza o profissional a executar o serviço.
func CanPerform(assoc *models.ProfessionalService) bool {
	return assoc != nil && assoc.IsActive
}

// AssociationDuration devolve a duração do vínculo quando ele está ativo,
// senão nil.
func AssociationDuration(assoc *models.ProfessionalService) *int {
	if !CanPerform(assoc) {
		return nil
	}
	d := assoc.CustomDurationMinutes
	return &d
}

// ResolveDuration decide a duração efetiva de um atendimento:
//
//   - profissional sem nenhum vínculo cadastrado executa qualquer serviço
//     com a duração padrão do serviço;
//   - profissional com vínculos só executa serviços com vínculo ativo, e a
//     duração personalizada do vínculo prevalece.
func ResolveDuration(
	hasAssociations bool,
	assoc *models.ProfessionalService,
	svc *models.Service,
) (int, error) {

	if !hasAssociations {
		return svc.DurationMinutes, nil
	}

	if !CanPerform(assoc) {
		return 0, httperr.ErrBusiness("service_not_allowed")
	}

	if assoc.CustomDurationMinutes > 0 {
		return assoc.CustomDurationMinutes, nil
	}
	return svc.DurationMinutes, nil
}

// EndTime calcula o fim do atendimento a partir da duração resolvida.
func EndTime(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}
