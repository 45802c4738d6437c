package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/agenda/internal/availability"
)

// BookPrefix - callback кнопки слота: book:<prof>:<date>:<HHMM>:<service>
const BookPrefix = "book:"

var errUsage = errors.New("wrong command arguments")

// commandArgs возвращает аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad id %q", errUsage, raw)
	}
	return id, nil
}

type slotsRequest struct {
	ProfessionalID int64
	Date           string
	ServiceID      *int64
}

// parseSlotsArgs разбирает /slots <professional_id> <YYYY-MM-DD> [service_id]
func parseSlotsArgs(text string) (slotsRequest, error) {
	args := commandArgs(text)
	if len(args) < 2 || len(args) > 3 {
		return slotsRequest{}, errUsage
	}

	professionalID, err := parseID(args[0])
	if err != nil {
		return slotsRequest{}, err
	}

	if _, err := availability.ParseDate(args[1]); err != nil {
		return slotsRequest{}, fmt.Errorf("%w: bad date %q", errUsage, args[1])
	}

	req := slotsRequest{ProfessionalID: professionalID, Date: args[1]}
	if len(args) == 3 {
		serviceID, err := parseID(args[2])
		if err != nil {
			return slotsRequest{}, err
		}
		req.ServiceID = &serviceID
	}

	return req, nil
}

// parseLinkArgs разбирает /link <client_id> <phone>
func parseLinkArgs(text string) (int64, string, error) {
	args := commandArgs(text)
	if len(args) != 2 {
		return 0, "", errUsage
	}

	clientID, err := parseID(args[0])
	if err != nil {
		return 0, "", err
	}

	return clientID, args[1], nil
}

// parseVerifyArgs разбирает /verify <client_id> <phone> <code>
func parseVerifyArgs(text string) (int64, string, string, error) {
	args := commandArgs(text)
	if len(args) != 3 {
		return 0, "", "", errUsage
	}

	clientID, err := parseID(args[0])
	if err != nil {
		return 0, "", "", err
	}

	return clientID, args[1], args[2], nil
}

type bookRequest struct {
	ProfessionalID int64
	Date           string
	Time           string // HH:MM:SS
	ServiceID      int64
}

// BookCallbackData кодирует кнопку слота. Время без двоеточий чтобы не ломать разделитель
func BookCallbackData(professionalID int64, date, value string, serviceID int64) string {
	compact := strings.ReplaceAll(value, ":", "")
	if len(compact) > 4 {
		compact = compact[:4]
	}
	return fmt.Sprintf("%s%d:%s:%s:%d", BookPrefix, professionalID, date, compact, serviceID)
}

// parseBookCallback разбирает данные, собранные BookCallbackData
func parseBookCallback(data string) (bookRequest, error) {
	parts := strings.Split(strings.TrimPrefix(data, BookPrefix), ":")
	if !strings.HasPrefix(data, BookPrefix) || len(parts) != 4 {
		return bookRequest{}, fmt.Errorf("invalid callback data format")
	}

	professionalID, err := parseID(parts[0])
	if err != nil {
		return bookRequest{}, err
	}

	if _, err := availability.ParseDate(parts[1]); err != nil {
		return bookRequest{}, fmt.Errorf("invalid callback date: %w", err)
	}

	if len(parts[2]) != 4 {
		return bookRequest{}, fmt.Errorf("invalid callback time %q", parts[2])
	}
	value, err := availability.NormalizeTimeOfDay(parts[2][:2] + ":" + parts[2][2:])
	if err != nil {
		return bookRequest{}, fmt.Errorf("invalid callback time: %w", err)
	}

	serviceID, err := parseID(parts[3])
	if err != nil {
		return bookRequest{}, err
	}

	return bookRequest{
		ProfessionalID: professionalID,
		Date:           parts[1],
		Time:           value,
		ServiceID:      serviceID,
	}, nil
}
