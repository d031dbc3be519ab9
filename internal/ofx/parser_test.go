package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/ledgerflow/internal/model"
)

const sampleOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>JAN01
<NAME>STARBUCKS
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1250.00
<FITID>JAN02
<NAME>PAYROLL DEPOSIT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFileConvertsToOnceTransactions(t *testing.T) {
	parser := NewParser()

	txns, err := parser.ParseFile(context.Background(), strings.NewReader(sampleOFX))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	coffee := txns[0]
	assert.Equal(t, "STARBUCKS", coffee.Description)
	assert.True(t, coffee.Amount.Equal(decimal.RequireFromString("-25.50")), "amount = %s", coffee.Amount)
	assert.Equal(t, model.Once, coffee.Frequency)
	assert.True(t, coffee.Start.Equal(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, coffee.Cleared, "statement entries import as cleared")
	assert.False(t, coffee.Scheduled)

	payroll := txns[1]
	assert.Equal(t, "PAYROLL DEPOSIT", payroll.Description)
	assert.True(t, payroll.Amount.Equal(decimal.RequireFromString("1250.00")))
	assert.True(t, payroll.Start.Equal(time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)))
}

func TestParseFileMixedCaseSeverity(t *testing.T) {
	parser := NewParser()
	fixed := strings.ReplaceAll(sampleOFX, "<SEVERITY>INFO", "<SEVERITY>Info")

	txns, err := parser.ParseFile(context.Background(), strings.NewReader(fixed))
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestParseFileGarbage(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseFile(context.Background(), strings.NewReader("this is not an OFX file"))
	require.Error(t, err)
}
