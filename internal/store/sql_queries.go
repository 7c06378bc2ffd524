package store

import (
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/fornecedor-api/models"
)

// Table and column names.
const (
	tableUserClaims = "user_claims"
	tableUserRoles  = "user_roles"

	colAccessFailedCount = "access_failed_count"
	colLockoutEnd        = "lockout_end"
)

var (
	tableUsers        = models.User{}.TableName()
	tableFornecedores = models.Supplier{}.TableName()

	userColumns = []string{
		"id", "email", "password_hash", "email_confirmed", "lockout_enabled",
		colAccessFailedCount, colLockoutEnd, "created_at",
	}
	supplierColumns = []string{"id", "nome", "documento", "ativo"}
)

// normalizeEmail is the lookup key of an account.
func normalizeEmail(email string) string {
	return strings.ToUpper(strings.TrimSpace(email))
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(tableUsers).
		Columns("id", "email", "normalized_email", "password_hash", "email_confirmed",
			"lockout_enabled", colAccessFailedCount, "created_at").
		Values(user.ID, user.Email, normalizeEmail(user.Email), user.PasswordHash, user.EmailConfirmed,
			user.LockoutEnabled, 0, user.CreatedAt).
		ToSql()
}

func buildInsertUserClaimsQuery(b sq.StatementBuilderType, userID string, claims []models.Claim) (string, []any, error) {
	q := b.Insert(tableUserClaims).Columns("user_id", "claim_type", "claim_value")
	for _, c := range claims {
		q = q.Values(userID, c.Type, c.Value)
	}
	return q.ToSql()
}

func buildInsertUserRolesQuery(b sq.StatementBuilderType, userID string, roles []string) (string, []any, error) {
	q := b.Insert(tableUserRoles).Columns("user_id", "role")
	for _, r := range roles {
		q = q.Values(userID, r)
	}
	return q.ToSql()
}

func buildSelectUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(tableUsers).
		Where(sq.Eq{"normalized_email": normalizeEmail(email)}).
		ToSql()
}

func buildSelectUserClaimsQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select("claim_type", "claim_value").
		From(tableUserClaims).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("claim_type", "claim_value").
		ToSql()
}

func buildSelectUserRolesQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select("role").
		From(tableUserRoles).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("role").
		ToSql()
}

// ── lockout ───────────────────────────────────────────────────────────────────

func buildIncrementAccessFailedQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Update(tableUsers).
		Set(colAccessFailedCount, sq.Expr(colAccessFailedCount+" + 1")).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildSelectAccessFailedQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(colAccessFailedCount).
		From(tableUsers).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildLockUserQuery(b sq.StatementBuilderType, userID string, until time.Time) (string, []any, error) {
	return b.Update(tableUsers).
		Set(colLockoutEnd, until.UTC()).
		Set(colAccessFailedCount, 0).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildSelectLockoutEndQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Select(colLockoutEnd).
		From(tableUsers).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

func buildResetLockoutQuery(b sq.StatementBuilderType, userID string) (string, []any, error) {
	return b.Update(tableUsers).
		Set(colAccessFailedCount, 0).
		Set(colLockoutEnd, nil).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// ── suppliers ─────────────────────────────────────────────────────────────────

func buildSelectAllSuppliersQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(supplierColumns...).
		From(tableFornecedores).
		OrderBy("nome", "id").
		ToSql()
}

func buildSelectSupplierByIDQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(supplierColumns...).
		From(tableFornecedores).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildInsertSupplierQuery(b sq.StatementBuilderType, s models.Supplier) (string, []any, error) {
	return b.Insert(tableFornecedores).
		Columns(supplierColumns...).
		Values(s.ID, s.Name, s.Document, s.Active).
		ToSql()
}

func buildUpdateSupplierQuery(b sq.StatementBuilderType, s models.Supplier) (string, []any, error) {
	return b.Update(tableFornecedores).
		Set("nome", s.Name).
		Set("documento", s.Document).
		Set("ativo", s.Active).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
}

func buildDeleteSupplierQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(tableFornecedores).
		Where(sq.Eq{"id": id}).
		ToSql()
}
