// Package render draws live list snapshots as terminal tables.
package render

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"petclinic-console/internal/model"
	"petclinic-console/internal/reconcile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Italic(true).Faint(true)
)

// Renderer writes tables to w. Calls are serialised.
type Renderer struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Inventories draws the inventory list.
func (r *Renderer) Inventories(items []model.Inventory) {
	r.write(InventoryTable(items))
}

// InventoryTypes draws the inventory type list.
func (r *Renderer) InventoryTypes(items []model.InventoryType) {
	r.write(InventoryTypeTable(items))
}

// Products draws the product list of one inventory.
func (r *Renderer) Products(items []model.InventoryProduct) {
	r.write(ProductTable(items))
}

// Visits draws the visit list bucketed by status.
func (r *Renderer) Visits(items []model.Visit) {
	r.write(VisitBuckets(items))
}

// Bills draws a bill history list.
func (r *Renderer) Bills(items []model.Bill) {
	r.write(BillTable(items))
}

// Vets draws the vet list.
func (r *Renderer) Vets(items []model.Vet) {
	r.write(VetTable(items))
}

// Line writes one plain message.
func (r *Renderer) Line(format string, args ...any) {
	r.write(fmt.Sprintf(format, args...))
}

func (r *Renderer) write(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, s)
}

// InventoryTable returns the inventory list as a table.
func InventoryTable(items []model.Inventory) string {
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		rows = append(rows, []string{i.InventoryCode, i.InventoryName, i.InventoryType, i.InventoryDescription})
	}
	return titled(fmt.Sprintf("Inventories (%d)", len(items)),
		newTable([]string{"Code", "Name", "Type", "Description"}, rows))
}

// InventoryTypeTable returns the inventory type list as a table.
func InventoryTypeTable(items []model.InventoryType) string {
	rows := make([][]string, 0, len(items))
	for _, t := range items {
		rows = append(rows, []string{t.TypeID, t.Type})
	}
	return titled(fmt.Sprintf("Inventory types (%d)", len(items)),
		newTable([]string{"ID", "Type"}, rows))
}

// ProductTable returns a product list as a table.
func ProductTable(items []model.InventoryProduct) string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			p.ProductName,
			p.ProductDescription,
			strconv.Itoa(p.ProductQuantity),
			strconv.FormatFloat(p.ProductPrice, 'f', 2, 64),
			strconv.FormatFloat(p.ProductSalePrice, 'f', 2, 64),
		})
	}
	return titled(fmt.Sprintf("Products (%d)", len(items)),
		newTable([]string{"Name", "Description", "Quantity", "Price", "Sale price"}, rows))
}

// BillTable returns a bill history list as a table.
func BillTable(items []model.Bill) string {
	rows := make([][]string, 0, len(items))
	for _, b := range items {
		rows = append(rows, []string{
			b.BillID,
			b.OwnerFirstName + " " + b.OwnerLastName,
			b.VisitType,
			b.Date,
			strconv.FormatFloat(b.Amount, 'f', 2, 64),
			string(b.BillStatus),
			b.DueDate,
		})
	}
	return titled(fmt.Sprintf("Bills (%d)", len(items)),
		newTable([]string{"Bill", "Owner", "Visit type", "Date", "Amount", "Status", "Due"}, rows))
}

// VetTable returns the vet list as a table.
func VetTable(items []model.Vet) string {
	rows := make([][]string, 0, len(items))
	for _, v := range items {
		active := "no"
		if v.Active {
			active = "yes"
		}
		rows = append(rows, []string{v.FirstName + " " + v.LastName, v.Email, v.PhoneNumber, active})
	}
	return titled(fmt.Sprintf("Vets (%d)", len(items)),
		newTable([]string{"Name", "Email", "Phone", "Active"}, rows))
}

// VisitBuckets returns one table per displayed visit status.
func VisitBuckets(items []model.Visit) string {
	groups := reconcile.GroupBy(items, func(v model.Visit) model.VisitStatus { return v.Status }, model.VisitStatuses)

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		title := fmt.Sprintf("%s (%d)", g.Key, len(g.Items))
		if len(g.Items) == 0 {
			parts = append(parts, titled(title, emptyStyle.Render("no visits")))
			continue
		}

		rows := make([][]string, 0, len(g.Items))
		for _, v := range g.Items {
			rows = append(rows, []string{
				v.VisitDate,
				v.PetName,
				v.Description,
				vetName(v),
			})
		}
		parts = append(parts, titled(title, newTable([]string{"Date", "Pet", "Description", "Vet"}, rows)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func vetName(v model.Visit) string {
	if v.VetFirstName == "" && v.VetLastName == "" {
		return v.PractitionerID
	}
	return v.VetFirstName + " " + v.VetLastName
}

func newTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func titled(title, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), body)
}
