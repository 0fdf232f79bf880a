package speetfake

import "net/http"

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decode(w, r, &body) {
		return
	}

	b.mu.Lock()
	a, ok := b.accounts[body.Email]
	if !ok || a.Password != body.Password {
		b.mu.Unlock()
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	b.seq++
	token := "access-" + a.UserID + "-" + itoa(b.seq)
	b.tokens[token] = a.UserID
	resp := map[string]any{
		"userId":       a.UserID,
		"email":        a.Email,
		"accessToken":  token,
		"refreshToken": "refresh-" + a.UserID,
		"role":         a.Role,
	}
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, "Login successful", resp)
}

func (b *Backend) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &body) {
		return
	}

	b.mu.Lock()
	_, ok := b.accounts[body.Email]
	if ok {
		b.otps[body.Email] = DefaultOTP
	}
	b.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, "OTP sent to your email", nil)
}

func (b *Backend) resetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		OTP      string `json:"otp"`
	}
	if !decode(w, r, &body) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[body.Email]
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if code, pending := b.otps[body.Email]; !pending || code != body.OTP {
		writeError(w, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}
	delete(b.otps, body.Email)
	a.Password = body.Password
	writeJSON(w, http.StatusOK, "Password reset successfully", nil)
}
