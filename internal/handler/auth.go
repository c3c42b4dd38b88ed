package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/gongsa-dev/daylabor-ledger/backend/internal/domain"
	"github.com/gongsa-dev/daylabor-ledger/backend/internal/utils"
)

const tokenCookieName = "__daylabor_ledger_token"

type AuthClaims struct {
	Role      string `json:"role"`
	CompanyID int64  `json:"companyId"`
	jwt.RegisteredClaims
}

// Signup 은 회사와 대표 관리자 계정을 함께 만든다. 생성된 초대 코드로
// 팀장들이 합류한다.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompanyName string `json:"companyName" validate:"required"`
		Name        string `json:"name" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	company := &domain.Company{
		Name:       req.CompanyName,
		InviteCode: utils.GenerateInviteCode(8),
	}
	manager := &domain.Author{
		Role:         domain.RoleManager,
		Name:         req.Name,
		Email:        &req.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := h.repository.CreateCompanyWithManager(r.Context(), company, manager); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "authors_email_key":
				h.badRequest(w, r, errors.New("이미 가입된 이메일입니다"))
			case pgErr.ConstraintName == "companies_invite_code_key":
				h.errorResponse(w, r, http.StatusConflict, "잠시 후 다시 시도해 주세요")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 초대 코드가 담긴 환영 메일을 보낸다
	mailMessage := domain.MailMessage{
		Type: "welcome",
		To:   req.Email,
		Data: domain.WelcomeMailData{
			Name:        req.Name,
			CompanyName: company.Name,
			InviteCode:  company.InviteCode,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "회사 등록 완료", map[string]any{
		"company": company,
		"manager": manager,
	})
}

// Join 은 초대 코드로 팀장 계정을 만든다. 팀장은 전화번호로 로그인한다.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InviteCode string `json:"inviteCode" validate:"required"`
		Name       string `json:"name" validate:"required"`
		Phone      string `json:"phone" validate:"required"`
		Password   string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	company, err := h.repository.GetCompanyByInviteCode(r.Context(), req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusBadRequest, "초대 코드가 올바르지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	foreman := &domain.Author{
		CompanyID:    company.ID,
		Role:         domain.RoleForeman,
		Name:         req.Name,
		Phone:        &req.Phone,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	if err := h.repository.CreateAuthor(r.Context(), foreman); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "authors_phone_key":
				h.badRequest(w, r, errors.New("이미 가입된 전화번호입니다"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "가입 완료", foreman)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Login    string `json:"login" validate:"required"` // 이메일 또는 전화번호
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	author, err := h.repository.GetAuthorByLogin(r.Context(), req.Login)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusUnauthorized, "계정이 존재하지 않거나 비밀번호가 올바르지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(author.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, http.StatusUnauthorized, "계정이 존재하지 않거나 비밀번호가 올바르지 않습니다")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !author.IsActive {
		h.errorResponse(w, r, http.StatusForbidden, "비활성화된 계정입니다")
		return
	}

	// JWT 발급
	expiration := time.Now().Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Role:      string(author.Role),
		CompanyID: author.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   strconv.FormatInt(author.ID, 10),
		},
	})
	ss, err := token.SignedString([]byte(h.config.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// http-only cookie 로 내려준다
	cookie := &http.Cookie{
		Name:     tokenCookieName,
		Value:    ss,
		Expires:  expiration,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
	}

	if h.config.Environment == "production" {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, cookie)

	h.successResponse(w, r, "로그인 성공", author)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:    tokenCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
		Path:    "/",
	})

	h.successResponse(w, r, "로그아웃 성공", nil)
}

// RequireResetPassword 는 이메일로 인증번호를 보낸다. 이메일 계정이 있는
// 관리자만 이 경로로 비밀번호를 재설정할 수 있다.
func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	author, err := h.repository.GetAuthorByEmail(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 계정이 없다는 사실을 알려주지 않기 위해 성공으로 응답한다
			h.successResponse(w, r, "비밀번호 재설정 인증번호를 메일로 보냈습니다", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// OTP 를 만들어 redis 에 저장한다
	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Set(ctx, fmt.Sprintf("otp_%s_reset_password", req.Email), otp, time.Duration(h.config.OTP.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "reset_password",
		To:   req.Email,
		Data: domain.ResetPasswordMailData{
			Name:       author.Name,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // 메일에는 분 단위로 표시한다
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "비밀번호 재설정 인증번호를 메일로 보냈습니다", nil)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email" validate:"required,email"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// OTP 검증
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	otp, err := h.redisClient.Get(ctx, fmt.Sprintf("otp_%s_reset_password", req.Email)).Result()
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, "인증번호가 올바르지 않습니다")
		return
	}

	if otp != req.OTP {
		h.errorResponse(w, r, http.StatusBadRequest, "인증번호가 올바르지 않습니다")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.repository.UpdateAuthorPasswordByEmail(r.Context(), req.Email, string(hashedPassword)); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "다시 시도해 주세요")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// OTP 폐기
	if err := h.redisClient.Del(ctx, fmt.Sprintf("otp_%s_reset_password", req.Email)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "비밀번호 재설정 완료", nil)
}
