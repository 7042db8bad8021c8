package storage

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/fixdict/internal/dict"
	"github.com/guttosm/fixdict/internal/quickfix"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

const testSpec = `<fix type="FIX" major="4" minor="2" servicepack="0">
 <header><field name="MsgType" required="Y"/></header>
 <messages>
  <message name="Heartbeat" msgtype="0" msgcat="admin"><field name="TestReqID" required="N"/></message>
 </messages>
 <trailer/>
 <components/>
 <fields>
  <field number="35" name="MsgType" type="STRING"><value enum="0" description="HEARTBEAT"/></field>
  <field number="112" name="TestReqID" type="STRING"/>
 </fields>
</fix>`

func newMockRepo(t *testing.T) (*dictionaryRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &dictionaryRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func loadTestDict(t *testing.T) *dict.Dictionary {
	t.Helper()
	d, err := quickfix.Load(strings.NewReader(testSpec))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return d
}

// expectCopy registers a prepared COPY with one exec per row plus the final flush.
func expectCopy(mock sqlmock.Sqlmock, rows int) {
	prep := mock.ExpectPrepare(".*")
	for i := 0; i < rows; i++ {
		prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectHeader(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dictionaries WHERE version = $1")).
		WithArgs("FIX.4.2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO dictionaries").
		WithArgs("FIX.4.2", "FIX42.xml", 2, 1, 2).WillReturnResult(sqlmock.NewResult(1, 1))
}

func TestSaveDictionary_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	d := loadTestDict(t)

	expectHeader(mock)
	expectCopy(mock, 2) // fields
	expectCopy(mock, 1) // field_enums
	expectCopy(mock, 1) // messages
	expectCopy(mock, 2) // components: StandardHeader, StandardTrailer
	expectCopy(mock, 2) // layout_items: Heartbeat + header
	mock.ExpectCommit()

	// pq.CopyIn is driver specific; sqlmock only sees the PREPARE/EXEC sequence.
	// The real COPY path is covered by the integration test.
	if err := repo.SaveDictionary(context.Background(), d, "FIX42.xml"); err != nil {
		t.Fatalf("SaveDictionary: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSaveDictionary_Errors(t *testing.T) {
	cases := []struct {
		name  string
		setup func(mock sqlmock.Sqlmock)
	}{
		{
			name: "begin",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(dummyErr{})
			},
		},
		{
			name: "delete",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("SET LOCAL synchronous_commit = OFF")).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("DELETE FROM dictionaries").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "row exec",
			setup: func(mock sqlmock.Sqlmock) {
				expectHeader(mock)
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
		{
			name: "final exec",
			setup: func(mock sqlmock.Sqlmock) {
				expectHeader(mock)
				prep := mock.ExpectPrepare(".*")
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(".*").WillReturnError(dummyErr{})
				mock.ExpectRollback()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)

			if err := repo.SaveDictionary(context.Background(), loadTestDict(t), "FIX42.xml"); err == nil {
				t.Fatalf("expected error")
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestCatalog_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM dictionaries WHERE version = $1)")).
		WithArgs("FIX.4.4").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasDictionary(ctx, "FIX.4.4")
	if err != nil || !ok {
		t.Fatalf("HasDictionary: ok=%v err=%v", ok, err)
	}

	at := time.Date(2025, 9, 11, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT version, source_file, field_count, message_count, component_count, ingested_at").
		WillReturnRows(sqlmock.NewRows([]string{"version", "source_file", "field_count", "message_count", "component_count", "ingested_at"}).
			AddRow("FIX.4.2", "FIX42.xml", 405, 46, 2, at).
			AddRow("FIX.4.4", "FIX44.xml", 912, 93, 106, at))
	recs, err := repo.ListIngested(ctx)
	if err != nil || len(recs) != 2 {
		t.Fatalf("ListIngested: recs=%+v err=%v", recs, err)
	}
	if recs[1].Version != "FIX.4.4" || recs[1].FieldCount != 912 || !recs[1].IngestedAt.Equal(at) {
		t.Fatalf("unexpected record: %+v", recs[1])
	}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dictionaries WHERE version = $1")).
		WithArgs("FIX.4.2").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.DeleteDictionary(ctx, "FIX.4.2"); err != nil {
		t.Fatalf("DeleteDictionary: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasDictionary_Error(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery("SELECT EXISTS").WillReturnError(dummyErr{})
	if _, err := repo.HasDictionary(context.Background(), "FIX.4.4"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFlattenLayout(t *testing.T) {
	spec := strings.Replace(testSpec, `<field name="TestReqID" required="N"/>`,
		`<field name="TestReqID" required="N"/><group name="NoHops" required="N"><field name="HopCompID" required="Y"/></group>`, 1)
	spec = strings.Replace(spec, `<field number="112" name="TestReqID" type="STRING"/>`,
		`<field number="112" name="TestReqID" type="STRING"/><field number="627" name="NoHops" type="NUMINGROUP"/><field number="628" name="HopCompID" type="STRING"/>`, 1)
	d, err := quickfix.Load(strings.NewReader(spec))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	m, _ := d.MessageByName("Heartbeat")

	rows := FlattenLayout("message", "Heartbeat", m.Layout())
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %+v", rows)
	}
	if rows[1].Kind != "group" || rows[1].Name != "NoHops" || rows[1].Path != "" || rows[1].Position != 1 {
		t.Fatalf("unexpected group row: %+v", rows[1])
	}
	if rows[2].Path != "1" || rows[2].Name != "HopCompID" || !rows[2].Required {
		t.Fatalf("unexpected nested row: %+v", rows[2])
	}
}

func TestNewDictionaryRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewDictionaryRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}
