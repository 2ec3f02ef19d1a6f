package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/odontosys/clinic-api/internal/models"
)

// MercadoPago gera links de pagamento para transações pendentes.
type MercadoPago struct {
	preferences preference.Client
}

// New devolve nil quando o token não está configurado.
func New(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences: preference.NewClient(cfg),
	}, nil
}

// CreatePaymentLink cria uma preferência de checkout para a transação e
// devolve (preferenceID, initPoint).
func (m *MercadoPago) CreatePaymentLink(
	ctx context.Context,
	tx *models.FinancialTransaction,
) (string, string, error) {

	title := tx.Description
	if title == "" {
		title = fmt.Sprintf("Cobrança #%d", tx.ID)
	}

	req := preference.Request{
		ExternalReference: fmt.Sprintf("transaction-%d", tx.ID),
		Items: []preference.ItemRequest{
			{
				Title:     title,
				Quantity:  1,
				UnitPrice: tx.Amount,
			},
		},
	}

	resource, err := m.preferences.Create(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return resource.ID, resource.InitPoint, nil
}
