package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	freighthttp "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/permissions"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/pay"
	"freight/internal/core/domain/model/stop"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

func (f handlerFunc[Req, Resp]) Handle(ctx context.Context, req Req) (Resp, error) {
	return f(ctx, req)
}

type commandFunc[Req any] func(ctx context.Context, req Req) error

func (f commandFunc[Req]) Handle(ctx context.Context, req Req) error {
	return f(ctx, req)
}

const (
	admin  = "admin"
	viewer = "viewer"
)

func newTestEcho(t *testing.T, h freighthttp.Handlers, opts freighthttp.Options) *echo.Echo {
	t.Helper()
	checker, err := permissions.NewStaticChecker(admin + ":*;" + viewer + ":")
	require.NoError(t, err)
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if h.GetLoad == nil {
		h.GetLoad = handlerFunc[queries.GetLoadQuery, queries.GetLoadQueryResponse](
			func(_ context.Context, q queries.GetLoadQuery) (queries.GetLoadQueryResponse, error) {
				return queries.GetLoadQueryResponse{Load: queries.LoadView{
					ID:     q.LoadID(),
					Status: load.Open,
				}}, nil
			})
	}
	return freighthttp.NewServer(h, checker, opts).Echo()
}

func serve(e *echo.Echo, method, target, user string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if user != "" {
		req.Header.Set(freighthttp.UserIDHeader, user)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func serveJSON(e *echo.Echo, method, target, user, body string) *httptest.ResponseRecorder {
	return serve(e, method, target, user, strings.NewReader(body), echo.MIMEApplicationJSON)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func multipartBody(t *testing.T, fields map[string]string, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		part, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf, w.FormDataContentType()
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		e := newTestEcho(t, freighthttp.Handlers{}, freighthttp.Options{})
		rec := serve(e, http.MethodGet, "/health", "", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		e := newTestEcho(t, freighthttp.Handlers{}, freighthttp.Options{
			HealthCheck: func(context.Context) error { return errors.New("connection refused") },
		})
		rec := serve(e, http.MethodGet, "/health", "", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestPermissions(t *testing.T) {
	called := false
	e := newTestEcho(t, freighthttp.Handlers{
		CreateLoad: commandFunc[commands.CreateLoadCommand](func(context.Context, commands.CreateLoadCommand) error {
			called = true
			return nil
		}),
	}, freighthttp.Options{})

	t.Run("anonymous reads are rejected", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/v1/loads/"+kernel.NewUUID().String(), "", nil, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := decode[freighthttp.Error](t, rec)
		assert.Equal(t, http.StatusForbidden, body.Code)
		assert.Contains(t, body.Message, "identity")
	})

	t.Run("identified users may read", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/v1/loads/"+kernel.NewUUID().String(), viewer, nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("writes need the capability", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, "/api/v1/loads", viewer, `{"load_id":"L-1"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, decode[freighthttp.Error](t, rec).Message, "load_create")
		assert.False(t, called)
	})
}

func TestCreateAndUpdateLoad(t *testing.T) {
	var created, updated load.Changes
	e := newTestEcho(t, freighthttp.Handlers{
		CreateLoad: commandFunc[commands.CreateLoadCommand](func(_ context.Context, cmd commands.CreateLoadCommand) error {
			created = cmd.Changes()
			return nil
		}),
		UpdateLoad: commandFunc[commands.UpdateLoadCommand](func(_ context.Context, cmd commands.UpdateLoadCommand) error {
			updated = cmd.Changes()
			return nil
		}),
	}, freighthttp.Options{})

	rec := serveJSON(e, http.MethodPost, "/api/v1/loads", admin,
		`{"load_id":"L-100","equipment_type":"REEFER","load_pay":"1200.50","mile":300}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "OPEN", body["status"])
	assert.NotEmpty(t, body["id"])

	assert.Equal(t, "L-100", *created.LoadNumber.Ptr())
	assert.Equal(t, kernel.EquipmentReefer, *created.EquipmentType.Ptr())
	assert.True(t, decimal.RequireFromString("1200.50").Equal(*created.LoadPay.Ptr()))
	assert.Equal(t, 300, *created.Mile.Ptr())
	assert.False(t, created.Notes.Present())

	id := kernel.NewUUID().String()
	rec = serveJSON(e, http.MethodPatch, "/api/v1/loads/"+id, admin, `{"notes":null,"mile":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, updated.Notes.IsNull())
	assert.Equal(t, 10, *updated.Mile.Ptr())
	assert.False(t, updated.LoadPay.Present())

	t.Run("empty update", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPatch, "/api/v1/loads/"+id, admin, `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPatch, "/api/v1/loads/not-a-uuid", admin, `{"mile":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPatch, "/api/v1/loads/"+id, admin, `{"mile":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoadBoard(t *testing.T) {
	var got []load.Status
	e := newTestEcho(t, freighthttp.Handlers{
		GetLoadBoard: handlerFunc[queries.GetLoadBoardQuery, []queries.LoadBoardItem](
			func(_ context.Context, q queries.GetLoadBoardQuery) ([]queries.LoadBoardItem, error) {
				got = q.Statuses()
				return []queries.LoadBoardItem{{
					ID:            kernel.NewUUID(),
					LoadNumber:    "L-7",
					Status:        load.InYard,
					EquipmentType: kernel.EquipmentFlatbed,
					StopCount:     3,
				}}, nil
			}),
	}, freighthttp.Options{})

	rec := serve(e, http.MethodGet, "/api/v1/loads?status=open,in_yard&status=COVERED", viewer, nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []load.Status{load.Open, load.InYard, load.Covered}, got)

	items := decode[[]map[string]any](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "IN_YARD", items[0]["status"])
	assert.Equal(t, "FLATBED", items[0]["equipment_type"])
	assert.InDelta(t, 3, items[0]["stop_count"], 0)

	t.Run("unknown status", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/v1/loads?status=LOST", viewer, nil, "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestChangeStatus(t *testing.T) {
	var got []commands.ChangeStatusCommand
	var fail error
	e := newTestEcho(t, freighthttp.Handlers{
		ChangeStatus: commandFunc[commands.ChangeStatusCommand](func(_ context.Context, cmd commands.ChangeStatusCommand) error {
			got = append(got, cmd)
			return fail
		}),
	}, freighthttp.Options{})
	id := kernel.NewUUID()
	base := "/api/v1/loads/" + id.String() + "/status"

	for _, path := range []string{"/next", "/back", "/yard"} {
		rec := serve(e, http.MethodPost, base+path, admin, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	rec := serveJSON(e, http.MethodPut, base, admin, `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, got, 4)
	assert.Equal(t, commands.ActionNext, got[0].Action())
	assert.Equal(t, commands.ActionBack, got[1].Action())
	assert.Equal(t, commands.ActionToggle, got[2].Action())
	assert.Equal(t, commands.ActionSet, got[3].Action())
	assert.Equal(t, load.Delivered, got[3].Target())
	assert.True(t, id.IsEqual(got[3].LoadID()))

	t.Run("unknown target", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPut, base, admin, `{"status":"LOST"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("version conflict", func(t *testing.T) {
		fail = errs.NewConflictError("load", id)
		defer func() { fail = nil }()
		rec := serve(e, http.MethodPost, base+"/next", admin, nil, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing capability", func(t *testing.T) {
		rec := serve(e, http.MethodPost, base+"/next", viewer, nil, "")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestStops(t *testing.T) {
	loadID := kernel.NewUUID()
	fcfs := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	plus := fcfs.Add(2 * time.Hour)
	createCalls := 0
	var updated commands.UpdateStopCommand

	e := newTestEcho(t, freighthttp.Handlers{
		CreateStop: commandFunc[commands.CreateStopCommand](func(_ context.Context, cmd commands.CreateStopCommand) error {
			createCalls++
			assert.Equal(t, "Pickup", cmd.Name())
			assert.Equal(t, "Dallas", cmd.Details().Address.City)
			assert.True(t, cmd.Schedule().IsWindow())
			return nil
		}),
		UpdateStop: commandFunc[commands.UpdateStopCommand](func(_ context.Context, cmd commands.UpdateStopCommand) error {
			updated = cmd
			return nil
		}),
		ListStops: handlerFunc[queries.ListStopsQuery, []queries.StopView](
			func(_ context.Context, q queries.ListStopsQuery) ([]queries.StopView, error) {
				return []queries.StopView{{
					ID:       kernel.NewUUID(),
					LoadID:   q.LoadID(),
					Name:     stop.Name("Pickup"),
					Details:  stop.Details{Address: stop.Address{City: "Dallas"}},
					FCFS:     &fcfs,
					PlusHour: &plus,
				}}, nil
			}),
	}, freighthttp.Options{})
	base := "/api/v1/loads/" + loadID.String() + "/stops"

	rec := serveJSON(e, http.MethodPost, base, admin,
		`{"stop_name":"Pickup","city":"Dallas","fcfs":"2026-05-04T08:00:00Z","plus_hour":"2026-05-04T10:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, createCalls)

	stops := decode[[]map[string]any](t, rec)
	require.Len(t, stops, 1)
	assert.Nil(t, stops[0]["appointmentdate"])
	assert.Equal(t, "2026-05-04T08:00:00Z", stops[0]["fcfs"])
	assert.Equal(t, "Dallas", stops[0]["city"])

	t.Run("appointment and window together", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, base, admin,
			`{"stop_name":"Pickup","appointmentdate":"2026-05-04T08:00:00Z","fcfs":"2026-05-04T08:00:00Z"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, 1, createCalls)
	})

	t.Run("partial update", func(t *testing.T) {
		stopID := kernel.NewUUID()
		rec := serveJSON(e, http.MethodPatch, base+"/"+stopID.String(), admin,
			`{"phone":null,"appointmentdate":"2026-05-05T09:00:00Z"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, stopID.IsEqual(updated.StopID()))
		assert.Nil(t, updated.Name())
		assert.True(t, updated.DetailsChange().Phone.IsNull())
		assert.False(t, updated.DetailsChange().City.Present())
		assert.True(t, updated.ScheduleChange().Appointment.Present())
	})
}

func TestReconcileStops(t *testing.T) {
	e := newTestEcho(t, freighthttp.Handlers{
		ReconcileStops: handlerFunc[commands.ReconcileStopsCommand, bool](
			func(context.Context, commands.ReconcileStopsCommand) (bool, error) { return true, nil }),
	}, freighthttp.Options{})

	rec := serve(e, http.MethodPost, "/api/v1/loads/"+kernel.NewUUID().String()+"/stops/reconcile", admin, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"changed":true}`, rec.Body.String())
}

func TestOtherPay(t *testing.T) {
	var added commands.AddOtherPayCommand
	total := decimal.RequireFromString("1100")
	e := newTestEcho(t, freighthttp.Handlers{
		AddOtherPay: handlerFunc[commands.AddOtherPayCommand, pay.Summary](
			func(_ context.Context, cmd commands.AddOtherPayCommand) (pay.Summary, error) {
				added = cmd
				return pay.Summary{}, nil
			}),
		ListOtherPay: handlerFunc[queries.ListOtherPayQuery, queries.ListOtherPayQueryResponse](
			func(context.Context, queries.ListOtherPayQuery) (queries.ListOtherPayQueryResponse, error) {
				return queries.ListOtherPayQueryResponse{
					Items: []queries.OtherPayView{{
						ID:     kernel.NewUUID(),
						Amount: decimal.RequireFromString("150"),
						Type:   pay.TypeDetention,
					}},
					Summary: pay.Summary{
						TotalOtherPay:     decimal.RequireFromString("150"),
						AdditionalLoadPay: decimal.RequireFromString("150"),
						HasOtherPay:       true,
						TotalPay:          &total,
					},
				}, nil
			}),
	}, freighthttp.Options{})
	base := "/api/v1/loads/" + kernel.NewUUID().String() + "/other-pay"

	rec := serveJSON(e, http.MethodPost, base, admin, `{"amount":"150","pay_type":"detention","note":"4h wait"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, pay.TypeDetention, added.Type())
	assert.Equal(t, "4h wait", added.Note())

	body := decode[map[string]any](t, rec)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
	summary, ok := body["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1100", summary["total_pay"])

	t.Run("missing amount", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, base, admin, `{"pay_type":"LUMPER"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, base, admin, `{"amount":"1","pay_type":"TIP"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestMessages(t *testing.T) {
	loadID := kernel.NewUUID()
	var appended struct {
		author  string
		text    *string
		content string
	}
	e := newTestEcho(t, freighthttp.Handlers{
		AppendMessage: handlerFunc[commands.AppendMessageCommand, *chat.Message](
			func(_ context.Context, cmd commands.AppendMessageCommand) (*chat.Message, error) {
				appended.author = cmd.Author()
				appended.text = cmd.Text()
				appended.content = ""
				var ref *kernel.FileRef
				if f := cmd.File(); f != nil {
					b, err := io.ReadAll(f.Content)
					require.NoError(t, err)
					appended.content = string(b)
					r, err := kernel.NewFileRef("loads/x.txt", f.Name, "text/plain", int64(len(b)))
					require.NoError(t, err)
					ref = &r
				}
				return chat.NewMessage(cmd.MessageID(), cmd.LoadID(), cmd.Author(), cmd.Text(), ref, time.Now())
			}),
	}, freighthttp.Options{})
	target := "/api/v1/loads/" + loadID.String() + "/messages"

	t.Run("json", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, target, admin, `{"message":"on my way"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, admin, appended.author)
		require.NotNil(t, appended.text)
		assert.Equal(t, "on my way", *appended.text)

		body := decode[map[string]any](t, rec)
		assert.Equal(t, "on my way", body["message"])
		assert.Equal(t, false, body["edited"])
		assert.Nil(t, body["file"])
	})

	t.Run("multipart with file", func(t *testing.T) {
		buf, ct := multipartBody(t, map[string]string{"message": "bol attached"}, "bol.txt", "signed")
		rec := serve(e, http.MethodPost, target, admin, buf, ct)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "signed", appended.content)

		body := decode[map[string]any](t, rec)
		file, ok := body["file"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "bol.txt", file["name"])
	})

	t.Run("needs chat_create", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, target, viewer, `{"message":"hi"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDocuments(t *testing.T) {
	loadID := kernel.NewUUID()
	var attached commands.AttachDocumentCommand
	e := newTestEcho(t, freighthttp.Handlers{
		AttachDocument: handlerFunc[commands.AttachDocumentCommand, kernel.FileRef](
			func(_ context.Context, cmd commands.AttachDocumentCommand) (kernel.FileRef, error) {
				attached = cmd
				return kernel.NewFileRef("loads/k.pdf", cmd.File().Name, "application/pdf", 3)
			}),
		DownloadDocument: handlerFunc[queries.DownloadDocumentQuery, queries.FileDownload](
			func(_ context.Context, q queries.DownloadDocumentQuery) (queries.FileDownload, error) {
				if q.Slot() != load.DocProofOfDelivery {
					return queries.FileDownload{}, errs.NewObjectNotFoundError("document", q.Slot())
				}
				ref, err := kernel.NewFileRef("loads/k.pdf", "pod.pdf", "application/pdf", 3)
				require.NoError(t, err)
				return queries.FileDownload{File: ref, Content: io.NopCloser(strings.NewReader("pdf"))}, nil
			}),
	}, freighthttp.Options{})
	base := "/api/v1/loads/" + loadID.String() + "/documents/"

	t.Run("upload", func(t *testing.T) {
		buf, ct := multipartBody(t, nil, "pod.pdf", "pdf")
		rec := serve(e, http.MethodPut, base+"pod", admin, buf, ct)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, load.DocProofOfDelivery, attached.Slot())
		assert.Equal(t, "pod.pdf", attached.File().Name)
		assert.Equal(t, "pod.pdf", decode[map[string]any](t, rec)["name"])
	})

	t.Run("upload without file", func(t *testing.T) {
		buf, ct := multipartBody(t, map[string]string{"note": "x"}, "", "")
		rec := serve(e, http.MethodPut, base+"pod", admin, buf, ct)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown slot", func(t *testing.T) {
		buf, ct := multipartBody(t, nil, "x.pdf", "pdf")
		rec := serve(e, http.MethodPut, base+"invoice", admin, buf, ct)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("download", func(t *testing.T) {
		rec := serve(e, http.MethodGet, base+"pod", viewer, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pdf", rec.Body.String())
		assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, `attachment; filename=pod.pdf`, rec.Header().Get(echo.HeaderContentDisposition))
	})

	t.Run("download empty slot", func(t *testing.T) {
		rec := serve(e, http.MethodGet, base+"bol", viewer, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFleet(t *testing.T) {
	var assigned commands.AssignResourceCommand
	var registered []fleet.ResourceKind
	e := newTestEcho(t, freighthttp.Handlers{
		RegisterResource: commandFunc[commands.RegisterResourceCommand](func(_ context.Context, cmd commands.RegisterResourceCommand) error {
			registered = append(registered, cmd.Kind())
			return nil
		}),
		AssignResource: commandFunc[commands.AssignResourceCommand](func(_ context.Context, cmd commands.AssignResourceCommand) error {
			assigned = cmd
			return nil
		}),
		ReleaseResource: commandFunc[commands.ReleaseResourceCommand](func(context.Context, commands.ReleaseResourceCommand) error {
			return errs.NewUpstreamError("release", errors.New("db down"))
		}),
		ListUnits: handlerFunc[queries.ListUnitsQuery, []queries.UnitView](
			func(context.Context, queries.ListUnitsQuery) ([]queries.UnitView, error) {
				return []queries.UnitView{{
					ID:         kernel.NewUUID(),
					UnitNumber: "U-1",
					Trucks:     []queries.ResourceView{{ID: kernel.NewUUID(), Label: "T-10"}},
					Drivers:    []queries.ResourceView{{ID: kernel.NewUUID(), Label: "Sam Rivera"}},
				}}, nil
			}),
	}, freighthttp.Options{})

	rec := serveJSON(e, http.MethodPost, "/api/v1/trucks", admin, `{"number":"T-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, decode[map[string]any](t, rec)["id"])
	rec = serveJSON(e, http.MethodPost, "/api/v1/trailers", admin, `{"number":"TR-1","type":"reefer"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = serveJSON(e, http.MethodPost, "/api/v1/drivers", admin, `{"full_name":"Sam Rivera"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []fleet.ResourceKind{fleet.KindTruck, fleet.KindTrailer, fleet.KindDriver}, registered)

	unitID := kernel.NewUUID()
	resourceID := kernel.NewUUID()
	rec = serveJSON(e, http.MethodPut, "/api/v1/units/"+unitID.String()+"/resources/driver", admin,
		`{"id":"`+resourceID.String()+`","reassign":true}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Equal(t, fleet.KindDriver, assigned.Kind())
	assert.True(t, resourceID.IsEqual(assigned.ResourceID()))
	assert.True(t, assigned.Reassign())

	rec = serve(e, http.MethodGet, "/api/v1/units", viewer, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	units := decode[[]map[string]any](t, rec)
	require.Len(t, units, 1)
	assert.Equal(t, "U-1", units[0]["unit_number"])
	assert.Len(t, units[0]["trailers"], 0)
	drivers, ok := units[0]["drivers"].([]any)
	require.True(t, ok)
	require.Len(t, drivers, 1)
	assert.Equal(t, "Sam Rivera", drivers[0].(map[string]any)["full_name"])

	t.Run("unknown kind", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPut, "/api/v1/units/"+unitID.String()+"/resources/boat", admin, `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		rec := serve(e, http.MethodDelete, "/api/v1/units/"+unitID.String()+"/resources/truck", admin, nil, "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("needs fleet_update", func(t *testing.T) {
		rec := serveJSON(e, http.MethodPost, "/api/v1/trucks", viewer, `{"number":"T-11"}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestInternalErrorsAreHidden(t *testing.T) {
	e := newTestEcho(t, freighthttp.Handlers{
		GetLoad: handlerFunc[queries.GetLoadQuery, queries.GetLoadQueryResponse](
			func(context.Context, queries.GetLoadQuery) (queries.GetLoadQueryResponse, error) {
				return queries.GetLoadQueryResponse{}, errors.New("secret detail")
			}),
	}, freighthttp.Options{})

	rec := serve(e, http.MethodGet, "/api/v1/loads/"+kernel.NewUUID().String(), viewer, nil, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := freighthttp.NewHTTPMetrics(reg)
	require.NoError(t, err)

	e := newTestEcho(t, freighthttp.Handlers{}, freighthttp.Options{Metrics: metrics, Gatherer: reg})
	id := kernel.NewUUID().String()
	serve(e, http.MethodGet, "/api/v1/loads/"+id, viewer, nil, "")
	serve(e, http.MethodGet, "/api/v1/loads/"+id, "", nil, "")

	expected := `
# HELP http_requests_total Total number of HTTP requests processed.
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/api/v1/loads/:id",status="200"} 1
http_requests_total{method="GET",path="/api/v1/loads/:id",status="403"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "http_requests_total"))
	count, err := testutil.GatherAndCount(reg, "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec := serve(e, http.MethodGet, "/metrics", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	_, err = freighthttp.NewHTTPMetrics(reg)
	assert.Error(t, err)
}
