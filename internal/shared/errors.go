package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired indicates a missing or expired bearer token.
	ErrSessionExpired = errors.New("session expired")
)

// UserSafeMessage reduces internal errors to something presentable.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Data tidak ditemukan"
	case errors.Is(err, ErrInvalidCredentials):
		return "Email atau password tidak valid"
	case errors.Is(err, ErrSessionExpired):
		return "Sesi berakhir, silakan masuk kembali"
	default:
		return "Terjadi kesalahan, coba lagi"
	}
}
