package pcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshaydev2089/payslip-vault/parser"
)

const statementText = `PRINCIPAL CONTROLLER OF DEFENCE ACCOUNTS (OFFICERS)
STATEMENT OF ACCOUNT FOR March 2024
Name: Arjun Sharma
A/C No: 12345678901
PAN No: ABCDE1234F
Location: Pune

EARNINGS
BPAY 136400.00
DA 61380.00
MSP 15500.00

DEDUCTIONS
DSOP 40000.00
AGIF 10000.00
ITAX 45000.00

DSOP FUND
OPENING BALANCE 500000
SUBSCRIPTION 40000
CLOSING BALANCE 540000

INCOME TAX DETAILS
INCOME TAX DEDUCTED 45000
`

func TestParseStatement(t *testing.T) {
	data, err := New().Parse(statementText)
	require.NoError(t, err)

	assert.Equal(t, "March 2024", data.Metadata["statementDate"])
	assert.Equal(t, "Arjun Sharma", data.PersonalInfo["name"])
	assert.Equal(t, "12345678901", data.PersonalInfo["accountNumber"])
	assert.Equal(t, "ABCDE1234F", data.PersonalInfo["panNumber"])
	assert.Equal(t, "Pune", data.PersonalInfo["location"])

	assert.Equal(t, 136400.00, data.Earnings["BPAY"])
	assert.Equal(t, 61380.00, data.Earnings["DA"])
	assert.Equal(t, 15500.00, data.Earnings["MSP"])

	assert.Equal(t, 40000.00, data.Deductions["DSOP"])
	assert.Equal(t, 10000.00, data.Deductions["AGIF"])
	assert.Equal(t, 45000.00, data.Deductions["ITAX"])

	assert.Equal(t, 45000.00, data.TaxDetails["incomeTax"])
	assert.Equal(t, 40000.00, data.DSOPDetails["subscription"])
	assert.Equal(t, 500000.00, data.DSOPDetails["openingBalance"])
	assert.Equal(t, 540000.00, data.DSOPDetails["closingBalance"])
}

func TestParseNumericPeriod(t *testing.T) {
	text := `PCDA (O) PUNE
STATEMENT OF ACCOUNT FOR 03/2024
Name: Arjun Sharma

EARNINGS
BPAY 136400.00
`
	data, err := New().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, "March", data.Metadata["month"])
	assert.Equal(t, "2024", data.Metadata["year"])
}

func TestParseRejectsForeignText(t *testing.T) {
	text := `TechNova Solutions Pvt Ltd
Payslip for the month of April 2023
Earnings
Basic Pay    45,000.00
`
	_, err := New().Parse(text)
	assert.ErrorIs(t, err, parser.ErrNoMatch)
}

func TestParseAbbreviatedMonth(t *testing.T) {
	text := `DEFENCE ACCOUNTS DEPARTMENT
STATEMENT OF ACCOUNT FOR Mar 2024
Name: Arjun Sharma

EARNINGS
BPAY 136400.00
`
	data, err := New().Parse(text)
	require.NoError(t, err)

	assert.Equal(t, "March 2024", data.Metadata["statementDate"])
}
