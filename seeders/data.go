package seeders

var teamsData = []struct {
	Name    string
	Company string
}{
	{Name: "Mechanics", Company: "GearGuard Inc."},
	{Name: "Electricians", Company: "GearGuard Inc."},
	{Name: "IT Support", Company: "GearGuard Inc."},
}

var usersData = []struct {
	FullName  string
	Email     string
	Password  string
	IsManager bool
	Teams     []string
}{
	{FullName: "Maya Ortiz", Email: "manager@gearguard.local", Password: "manager123", IsManager: true},
	{FullName: "Tom Becker", Email: "tom@gearguard.local", Password: "tech123", Teams: []string{"Mechanics"}},
	{FullName: "Lena Petrova", Email: "lena@gearguard.local", Password: "tech123", Teams: []string{"Electricians"}},
	{FullName: "Arjun Patel", Email: "arjun@gearguard.local", Password: "tech123", Teams: []string{"Mechanics", "IT Support"}},
	{FullName: "Sofia Marques", Email: "sofia@gearguard.local", Password: "user123"},
}

var categoriesData = []string{
	"CNC Machines",
	"Conveyors",
	"HVAC",
	"Vehicles",
	"Computers",
}

var equipmentData = []struct {
	Name         string
	SerialNumber string
	Department   string
	Location     string
	Category     string
	Team         string
	Condition    string
}{
	{Name: "CNC Lathe #1", SerialNumber: "CNC-001", Department: "Production", Location: "Hall A", Category: "CNC Machines", Team: "Mechanics", Condition: "Good"},
	{Name: "CNC Mill #2", SerialNumber: "CNC-002", Department: "Production", Location: "Hall A", Category: "CNC Machines", Team: "Mechanics", Condition: "Fair"},
	{Name: "Belt Conveyor B3", SerialNumber: "CONV-003", Department: "Logistics", Location: "Warehouse", Category: "Conveyors", Team: "Mechanics", Condition: "Good"},
	{Name: "Rooftop AC Unit", SerialNumber: "HVAC-001", Department: "Facilities", Location: "Roof", Category: "HVAC", Team: "Electricians", Condition: "Poor"},
	{Name: "Forklift F2", SerialNumber: "VH-002", Department: "Logistics", Location: "Warehouse", Category: "Vehicles", Team: "Mechanics", Condition: "Excellent"},
	{Name: "Front Desk Workstation", SerialNumber: "PC-104", Department: "Administration", Location: "Reception", Category: "Computers", Team: "IT Support", Condition: "Good"},
}
