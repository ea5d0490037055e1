package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/warner-inmobiliaria/internal/application/dto"
	"github.com/jhoicas/warner-inmobiliaria/internal/domain"
	"github.com/jhoicas/warner-inmobiliaria/pkg/jwt"
)

// inactiveMarker subcadena del estado que indica baja.
const inactiveMarker = "INACTIVO"

// Login valida email + DNI contra la planilla de personal y emite el token.
// El DNI se compara sin puntos ni espacios; el email sin distinguir mayúsculas.
// Credenciales que no coinciden → ErrUnauthorized; usuario dado de baja → ErrForbidden.
func (s *Service) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	dni := cleanDNI(in.DNI)
	if email == "" || dni == "" {
		return nil, fmt.Errorf("email y dni son obligatorios: %w", domain.ErrInvalidInput)
	}

	people, err := s.personnel(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range people {
		if strings.ToLower(strings.TrimSpace(a.Email)) != email || cleanDNI(a.DNI) != dni {
			continue
		}
		if strings.Contains(strings.ToUpper(a.Status), inactiveMarker) {
			s.log.Info().Str("email", email).Msg("login rechazado: usuario inactivo")
			return nil, fmt.Errorf("usuario inactivo/baja: %w", domain.ErrForbidden)
		}

		name := s.norm.Normalize(a.Name)
		role := a.Role()
		token, err := jwt.Generate(s.jwt.Secret, s.jwt.Issuer, jwt.Identity{Name: name, Email: email, Role: role}, s.jwt.ExpMinutes)
		if err != nil {
			return nil, fmt.Errorf("generar token: %w", err)
		}
		return &dto.LoginResponse{
			Token: token,
			Profile: dto.AgentProfile{
				Name:       name,
				Email:      email,
				Phone:      a.Phone,
				Position:   a.Position,
				Department: a.Department,
				HiredAt:    a.HiredAt,
				AvatarURL:  a.AvatarURL,
				Role:       role,
			},
		}, nil
	}
	return nil, fmt.Errorf("credenciales inválidas: %w", domain.ErrUnauthorized)
}

func cleanDNI(s string) string {
	return strings.NewReplacer(".", "", " ", "", "\t", "").Replace(strings.TrimSpace(s))
}
