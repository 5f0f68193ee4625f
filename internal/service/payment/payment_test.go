package payment

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestValidateAdd(t *testing.T) {
	tests := []struct {
		name    string
		req     AddPaymentRequest
		wantErr error
	}{
		{"valid cash", AddPaymentRequest{Amount: 500, PaymentMethod: "Cash"}, nil},
		{"valid upi", AddPaymentRequest{Amount: 250.50, PaymentMethod: "UPI"}, nil},
		{"zero amount allowed", AddPaymentRequest{Amount: 0, PaymentMethod: "Card"}, nil},
		{"negative amount", AddPaymentRequest{Amount: -1, PaymentMethod: "Cash"}, ErrInvalidAmount},
		{"unknown method", AddPaymentRequest{Amount: 100, PaymentMethod: "Cheque"}, ErrInvalidMethod},
		{"lowercase method", AddPaymentRequest{Amount: 100, PaymentMethod: "cash"}, ErrInvalidMethod},
		{"empty method", AddPaymentRequest{Amount: 100}, ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateAdd(tt.req); err != tt.wantErr {
				t.Errorf("validateAdd() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLedgerPipeline(t *testing.T) {
	pipeline := ledgerPipeline()

	if len(pipeline) != 4 {
		t.Fatalf("pipeline has %d stages, want 4", len(pipeline))
	}

	if pipeline[0][0].Key != "$match" {
		t.Errorf("stage 0 = %s, want $match", pipeline[0][0].Key)
	}
	if pipeline[1][0].Key != "$unwind" {
		t.Errorf("stage 1 = %s, want $unwind", pipeline[1][0].Key)
	}
	if pipeline[2][0].Key != "$project" {
		t.Errorf("stage 2 = %s, want $project", pipeline[2][0].Key)
	}

	sort, ok := pipeline[3][0].Value.(bson.D)
	if !ok || pipeline[3][0].Key != "$sort" {
		t.Fatalf("stage 3 = %s %T, want $sort with bson.D", pipeline[3][0].Key, pipeline[3][0].Value)
	}
	if sort[0].Key != "billGenerationDate" || sort[0].Value != -1 {
		t.Errorf("sort = %v, want billGenerationDate descending", sort)
	}
}
