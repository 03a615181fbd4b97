package service

import "errors"

// Domain error sentinels. Handlers map these onto response codes; services
// wrap them with fmt.Errorf("%w: ...") when extra context helps.
var (
	ErrInvalidAmount     = errors.New("la cantidad debe ser un entero positivo")
	ErrInsufficientStock = errors.New("inventario insuficiente")
	ErrMemberNotFound    = errors.New("socio no encontrado")
	ErrAlreadyCollected  = errors.New("el socio ya recogió su despensa")
	ErrDuplicateMember   = errors.New("el número de socio ya existe")
	ErrBranchNotFound    = errors.New("sucursal no encontrada")
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("datos inválidos")

	ErrInvalidCredentials = errors.New("usuario o contraseña incorrectos")
	ErrWeakPassword       = errors.New("la contraseña no cumple la política")
	ErrBranchScopeDenied  = errors.New("sucursal fuera del alcance asignado")
	ErrSupervisorRequired = errors.New("se requiere autorización de un supervisor")

	ErrCaptchaRequired = errors.New("captcha requerido")
	ErrCaptchaInvalid  = errors.New("captcha incorrecto")
	ErrCaptchaDisabled = errors.New("captcha deshabilitado")
)
