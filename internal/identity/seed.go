package identity

import "rpas/internal/models"

// seedUsers is the fixed initial user set, written at most once per install.
// Reviewers carry their program permanently; submitters pick a program and a
// reviewer through AssignProgramAndReviewer.
var seedUsers = []models.User{
	// Reviewers (4)
	{ID: "SUP100", Name: "Dr. A. Mumba", Role: models.RoleReviewer, Password: "pass100", Program: "cs"},
	{ID: "SUP200", Name: "Dr. B. Zulu", Role: models.RoleReviewer, Password: "pass200", Program: "is"},
	{ID: "SUP300", Name: "Prof. C. Banda", Role: models.RoleReviewer, Password: "pass300", Program: "se"},
	{ID: "SUP400", Name: "Mr. D. Phiri", Role: models.RoleReviewer, Password: "pass400", Program: "it"},
	// Submitters (8)
	{ID: "BIT230001", Name: "Alice Mwila", Role: models.RoleSubmitter, Password: "bit001"},
	{ID: "BIT230002", Name: "Brian Tembo", Role: models.RoleSubmitter, Password: "bit002"},
	{ID: "BIT230003", Name: "Chipo Nkhoma", Role: models.RoleSubmitter, Password: "bit003"},
	{ID: "BIT230004", Name: "Daniela Moyo", Role: models.RoleSubmitter, Password: "bit004"},
	{ID: "BIT230005", Name: "Edgar Kalaba", Role: models.RoleSubmitter, Password: "bit005"},
	{ID: "BIT230006", Name: "Flora Chanda", Role: models.RoleSubmitter, Password: "bit006"},
	{ID: "BIT230007", Name: "Grace Mwape", Role: models.RoleSubmitter, Password: "bit007"},
	{ID: "BIT230008", Name: "Henry Mulenga", Role: models.RoleSubmitter, Password: "bit008"},
}
