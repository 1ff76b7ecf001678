package service

import (
	"context"
	"errors"
	"strings"

	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/apierror"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/config"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/dto"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/model"
	"github.com/arturorangel1442/Inversiones-Ledezma-ECommerce/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Registrar(ctx context.Context, req dto.RegistroRequest) (*model.Usuario, error)
	Login(ctx context.Context, req dto.LoginRequest) (*model.Usuario, error)
	ObtenerUsuario(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

// normalizarCorreo lowercases and trims so the same mailbox is always the
// same account regardless of how the user typed it.
func normalizarCorreo(correo string) string {
	return strings.ToLower(strings.TrimSpace(correo))
}

func (s *authService) Registrar(ctx context.Context, req dto.RegistroRequest) (*model.Usuario, error) {
	correo := normalizarCorreo(req.Correo)
	if len(correo) < 5 || !strings.Contains(correo, "@") {
		return nil, apierror.Validacion("Correo electrónico inválido.")
	}
	if len(req.Password) < 6 {
		return nil, apierror.Validacion("La contraseña debe tener al menos 6 caracteres.")
	}

	if _, err := s.repo.FindByCorreo(ctx, correo); err == nil {
		return nil, apierror.Conflicto("Este correo electrónico ya está registrado.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	usuario := &model.Usuario{
		Correo:       correo,
		PasswordHash: string(hash),
		// Static policy: the reserved store email is the admin account.
		IsAdmin:            correo == normalizarCorreo(s.cfg.AdminEmail),
		NombreUsuario:      limpiarOpcional(req.NombreUsuario),
		DireccionPrincipal: limpiarOpcional(req.DireccionPrincipal),
	}
	if err := s.repo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*model.Usuario, error) {
	correo := normalizarCorreo(req.Correo)
	usuario, err := s.repo.FindByCorreo(ctx, correo)
	if err != nil {
		// Same message for unknown email and bad password.
		return nil, errCredenciales()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errCredenciales()
	}
	return usuario, nil
}

func (s *authService) ObtenerUsuario(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NoEncontrado("Usuario no encontrado.")
	}
	return usuario, nil
}

func errCredenciales() error {
	return &apierror.Error{Kind: apierror.KindNoAutenticado, Detail: "Correo o contraseña incorrectos."}
}

func limpiarOpcional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
