package schema

import (
	"path/filepath"
	"strings"

	"github.com/datamend/datamend-cli/internal/utils"
)

// SchemaFileName is the sample schema file written by WriteSamples.
const SchemaFileName = "canonical_schema.csv"

// WriteSamples materializes the built-in schema and three sample input files
// under dir so the tool can be exercised without any user data. Existing
// files are overwritten.
func WriteSamples(dir string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("name,category,required\n")
	for _, f := range Default().Fields() {
		sb.WriteString(f.Name)
		sb.WriteString(",")
		sb.WriteString(string(f.Category))
		if f.Required {
			sb.WriteString(",true\n")
		} else {
			sb.WriteString(",false\n")
		}
	}

	files := map[string]string{
		SchemaFileName: sb.String(),

		// Clean data: headers already canonical-ish, values well formed.
		"sample_clean.csv": "Company Name,Tax ID,Email,Phone,City,Postal Code,Website,Employees,Revenue,Date Established\n" +
			"Clean Corp,GST111222333,info@clean.com,+15551230001,Chennai,600001,https://clean.com,150,3000000,2012-05-10\n" +
			"Perfect Ltd,VAT444555666,contact@perfect.com,+15551230002,Hyderabad,500001,https://perfect.com,300,6000000,2008-11-22\n",

		// Messy headers and formats.
		"sample_messy.csv": "Comp Name,VAT#,E-mail,Tel No.,Town,ZIP,Web,Staff,Annual Rev,Founded\n" +
			"Messy Business,gst222333444,INFO@MESSY.COM,(555) 123-4567,mumbai,400-001,messy.com,200,\"$2,500,000\",Jan 2015\n" +
			"Chaotic Ltd,VAT555666777,Contact@Chaotic.net,555 987 6543,BANGALORE,560 001,www.chaotic.net,50,\"$1,200,000\",2020-12-01\n",

		// Missing and broken values.
		"sample_broken.csv": "Organization,Registration_No,Contact_Email,Mobile,Location,PinCode,HomePage,WorkForce,YearlyIncome,StartDate\n" +
			"Broken Corp,,broken@gamil.com,12345,\"Broken City, State\",12345abc,broken,,Unknown,2025/13/45\n" +
			",INVALID123,incomplete@,5551234567,,000000,https://incomplete.com,50.5,2500000.50,01-01-2020\n",
	}

	written := make([]string, 0, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := utils.SafeWriteFile(path, []byte(content)); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
