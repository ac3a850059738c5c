package storage

import (
	"github.com/opsdeck/backoffice/internal/records"
	"github.com/opsdeck/backoffice/internal/repository"
)

func orderToRecord(row *repository.Order) records.Order {
	return records.Order{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		Status:        row.Status,
		Amount:        row.Amount,
		PaymentMethod: row.PaymentMethod,
		VendorID:      row.VendorID,
		Prepaid:       row.Prepaid,
		Note:          row.Note,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func ordersToRecords(rows []*repository.Order) []records.Record {
	out := make([]records.Record, len(rows))
	for i, row := range rows {
		out[i] = orderToRecord(row)
	}
	return out
}

func returnToRecord(row *repository.Return) records.Return {
	return records.Return{
		ID:            row.ID,
		OrderID:       row.OrderID,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		Reason:        row.Reason,
		Status:        row.Status,
		RefundAmount:  row.RefundAmount,
		VendorID:      row.VendorID,
		Note:          row.Note,
		CreatedAt:     row.CreatedAt,
	}
}

func returnsToRecords(rows []*repository.Return) []records.Record {
	out := make([]records.Record, len(rows))
	for i, row := range rows {
		out[i] = returnToRecord(row)
	}
	return out
}

func exchangeToRecord(row *repository.Exchange) records.Exchange {
	return records.Exchange{
		ID:              row.ID,
		OrderID:         row.OrderID,
		CustomerName:    row.CustomerName,
		CustomerEmail:   row.CustomerEmail,
		OriginalItem:    row.OriginalItem,
		ReplacementItem: row.ReplacementItem,
		Status:          row.Status,
		VendorID:        row.VendorID,
		Note:            row.Note,
		CreatedAt:       row.CreatedAt,
	}
}

func exchangesToRecords(rows []*repository.Exchange) []records.Record {
	out := make([]records.Record, len(rows))
	for i, row := range rows {
		out[i] = exchangeToRecord(row)
	}
	return out
}

func userToRecord(row *repository.User) records.User {
	return records.User{
		ID:    row.ID,
		Name:  row.Name,
		Email: row.Email,
		Phone: row.Phone,
		Address: records.Address{
			Street:   row.AddressStreet,
			City:     row.AddressCity,
			State:    row.AddressState,
			Pincode:  row.AddressPincode,
			Landmark: row.AddressLandmark,
		},
		DateOfBirth: row.DateOfBirth,
		Role:        row.Role,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
	}
}

func usersToRecords(rows []*repository.User) []records.Record {
	out := make([]records.Record, len(rows))
	for i, row := range rows {
		out[i] = userToRecord(row)
	}
	return out
}

func vendorsToRecords(rows []*repository.Vendor) []records.Record {
	out := make([]records.Record, len(rows))
	for i, row := range rows {
		out[i] = records.Vendor{
			ID:        row.ID,
			Name:      row.Name,
			Email:     row.Email,
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
		}
	}
	return out
}
