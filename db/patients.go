/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/humaidq/hepaguard/clinical"
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Biomarkers are the liver panel values stored with a patient. Nil means
// not recorded.
type Biomarkers struct {
	TotalBilirubin            *float64
	DirectBilirubin           *float64
	AlkalinePhosphotase       *float64
	AlamineAminotransferase   *float64
	AspartateAminotransferase *float64
	TotalProteins             *float64
	Albumin                   *float64
	AGRatio                   *float64
}

// Measurements returns the recorded biomarkers keyed by dataset column name.
func (b Biomarkers) Measurements() clinical.Measurements {
	m := clinical.Measurements{}

	for _, f := range b.fields() {
		if *f.value != nil {
			m[f.key] = **f.value
		}
	}

	return m
}

type biomarkerField struct {
	column string
	key    string
	value  **float64
}

// fields lists the biomarker columns in table order.
func (b *Biomarkers) fields() []biomarkerField {
	return []biomarkerField{
		{column: "total_bilirubin", key: clinical.TotalBilirubin, value: &b.TotalBilirubin},
		{column: "direct_bilirubin", key: clinical.DirectBilirubin, value: &b.DirectBilirubin},
		{column: "alkaline_phosphotase", key: clinical.AlkalinePhosphotase, value: &b.AlkalinePhosphotase},
		{column: "alamine_aminotransferase", key: clinical.AlamineAminotransferase, value: &b.AlamineAminotransferase},
		{column: "aspartate_aminotransferase", key: clinical.AspartateAminotransferase, value: &b.AspartateAminotransferase},
		{column: "total_protiens", key: "total_protiens", value: &b.TotalProteins},
		{column: "albumin", key: clinical.Albumin, value: &b.Albumin},
		{column: "ag_ratio", key: "albumin_and_globulin_ratio", value: &b.AGRatio},
	}
}

// Patient is a saved assessment.
type Patient struct {
	ID          string
	Name        string
	DiseaseProb *float64
	RiskLabel   *string
	Age         *int
	Gender      *string
	Biomarkers
	Warnings  []string
	CreatedAt time.Time
}

// Measurements returns the biomarkers plus age and gender for prediction.
func (p Patient) Measurements() clinical.Measurements {
	m := p.Biomarkers.Measurements()

	if p.Age != nil {
		m["age"] = *p.Age
	}

	if p.Gender != nil {
		m["gender"] = *p.Gender
	}

	return m
}

// CreatePatientInput represents input for saving a patient. Nil fields are
// left NULL.
type CreatePatientInput struct {
	Name        string
	DiseaseProb *float64
	RiskLabel   *string
	Age         *int
	Gender      *string
	Biomarkers
	Warnings []string
}

// CreatePatient inserts a patient and returns its ID.
func CreatePatient(ctx context.Context, input CreatePatientInput) (string, error) {
	if conn == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", ErrPatientNameRequired
	}

	warnings := input.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	encoded, err := json.Marshal(warnings)
	if err != nil {
		return "", fmt.Errorf("failed to encode warnings: %w", err)
	}

	id := uuid.NewString()

	columns := []string{"id", "name", "warnings", "created_at"}
	values := []any{id, name, string(encoded), time.Now().UTC().Format(timeLayout)}

	add := func(column string, value any) {
		columns = append(columns, column)
		values = append(values, value)
	}

	if input.DiseaseProb != nil {
		add("disease_prob", *input.DiseaseProb)
	}

	if input.RiskLabel != nil {
		add("risk_label", *input.RiskLabel)
	}

	if input.Age != nil {
		add("age", *input.Age)
	}

	if input.Gender != nil {
		add("gender", *input.Gender)
	}

	for _, f := range input.Biomarkers.fields() {
		if *f.value != nil {
			add(f.column, **f.value)
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO patients (%s) VALUES (%s)", strings.Join(columns, ", "), placeholders)

	if _, err := conn.ExecContext(ctx, query, values...); err != nil {
		return "", fmt.Errorf("failed to create patient: %w", err)
	}

	logger.Info("Saved patient", "id", id, "columns", len(columns))

	return id, nil
}

const patientColumns = `id, name, disease_prob, risk_label, age, gender,
	total_bilirubin, direct_bilirubin, alkaline_phosphotase,
	alamine_aminotransferase, aspartate_aminotransferase,
	total_protiens, albumin, ag_ratio, warnings, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPatient(row rowScanner) (*Patient, error) {
	var (
		p          Patient
		prob       sql.NullFloat64
		risk       sql.NullString
		age        sql.NullInt64
		gender     sql.NullString
		markers    [8]sql.NullFloat64
		warnings   string
		createdRaw string
	)

	err := row.Scan(
		&p.ID, &p.Name, &prob, &risk, &age, &gender,
		&markers[0], &markers[1], &markers[2], &markers[3],
		&markers[4], &markers[5], &markers[6], &markers[7],
		&warnings, &createdRaw,
	)
	if err != nil {
		return nil, err
	}

	if prob.Valid {
		p.DiseaseProb = &prob.Float64
	}

	if risk.Valid {
		p.RiskLabel = &risk.String
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}

	if gender.Valid {
		p.Gender = &gender.String
	}

	for i, f := range p.Biomarkers.fields() {
		if markers[i].Valid {
			v := markers[i].Float64
			*f.value = &v
		}
	}

	if err := json.Unmarshal([]byte(warnings), &p.Warnings); err != nil {
		return nil, fmt.Errorf("failed to decode warnings: %w", err)
	}

	p.CreatedAt, err = time.Parse(timeLayout, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &p, nil
}

// GetPatient returns a single patient by ID.
func GetPatient(ctx context.Context, id string) (*Patient, error) {
	if conn == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	row := conn.QueryRowContext(ctx, "SELECT "+patientColumns+" FROM patients WHERE id = ?", id)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPatientNotFound
		}

		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return p, nil
}

// ListPatients returns saved patients, newest first. A limit of zero or
// less returns all of them.
func ListPatients(ctx context.Context, limit int) ([]Patient, error) {
	if conn == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = -1
	}

	rows, err := conn.QueryContext(ctx,
		"SELECT "+patientColumns+" FROM patients ORDER BY created_at DESC, rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn("Failed to close patient rows", "error", err)
		}
	}()

	var patients []Patient

	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}

		patients = append(patients, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}

// DeletePatient removes a patient. Deleting a missing patient reports
// ErrPatientNotFound.
func DeletePatient(ctx context.Context, id string) error {
	if conn == nil {
		return ErrDatabaseConnectionNotInitialized
	}

	res, err := conn.ExecContext(ctx, "DELETE FROM patients WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	if n == 0 {
		return ErrPatientNotFound
	}

	logger.Info("Deleted patient", "id", id)

	return nil
}

// CountPatientsByRisk returns the number of saved patients per risk label.
// Patients without a label are counted under "Unknown".
func CountPatientsByRisk(ctx context.Context) (map[string]int, error) {
	if conn == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := conn.QueryContext(ctx,
		"SELECT COALESCE(risk_label, 'Unknown'), COUNT(*) FROM patients GROUP BY 1")
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn("Failed to close count rows", "error", err)
		}
	}()

	counts := make(map[string]int)

	for rows.Next() {
		var (
			label string
			n     int
		)

		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}

		counts[label] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}

	return counts, nil
}

// SamplePatient is the record inserted by init-db.
func SamplePatient() CreatePatientInput {
	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }
	age := 45

	return CreatePatientInput{
		Name:        "Sample Patient",
		DiseaseProb: f(0.123),
		RiskLabel:   s("Low Risk"),
		Age:         &age,
		Gender:      s("Male"),
		Biomarkers: Biomarkers{
			TotalBilirubin:            f(0.8),
			DirectBilirubin:           f(0.2),
			AlkalinePhosphotase:       f(80),
			AlamineAminotransferase:   f(30),
			AspartateAminotransferase: f(25),
			TotalProteins:             f(7.0),
			Albumin:                   f(4.0),
			AGRatio:                   f(1.2),
		},
	}
}
