/*
Copyright © 2022 the OOI CGSN authors.
This file is part of the OOI CGSN data tools.

The OOI CGSN data tools are free software: you can redistribute them and/or
modify them under the terms of the GNU General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The OOI CGSN data tools are distributed in the hope that they will be
useful, but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the OOI CGSN data tools.  If not, see <http://www.gnu.org/licenses/>.
*/

package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/oceanobservatories/ooicgsn-data-tools/azfp"
	"github.com/oceanobservatories/ooicgsn-data-tools/echogram"
)

// burstInterval is the resampling interval for the plots. The
// instruments ping in bursts; 15-minute medians collapse each burst
// to a single profile and keep the figures readable over month spans.
const burstInterval = 15 * time.Minute

var (
	configFile       string
	tiltCorrection   float64
	subsite          string
	deploymentNumber int
	deployedDepth    float64
	colorbarRange    []float64
	verticalRange    []float64
)

func init() {
	f := echogramCmd.Flags()
	f.StringVar(&configFile, "config", "", "TOML configuration file with site overrides")
	f.Float64Var(&tiltCorrection, "tilt_correction", -1,
		"Instrument tilt [degrees] used to correct the vertical ranges. -1 uses the site default.")
	f.StringVar(&subsite, "subsite", "",
		"OOI site designator (e.g. CE01ISSM) selecting plotting defaults.")
	f.IntVar(&deploymentNumber, "deployment_number", 0,
		"Deployment number, recorded in the output file names and figure title.")
	f.Float64Var(&deployedDepth, "deployed_depth", 0,
		"Instrument depth [m], recorded in the figure title.")
	f.Float64SliceVar(&colorbarRange, "colorbar_range", nil,
		"Color bar limits as min,max [dB].")
	f.Float64SliceVar(&verticalRange, "vertical_range", nil,
		"Vertical axis limits as min,max [m].")
}

var echogramCmd = &cobra.Command{
	Use:   "echogram data_directory xml_file dates... output_directory",
	Short: "Generate an echogram from raw ZPLSC/G data",
	Long: `echogram reads the raw .01A files recorded by an ASL AZFP sonar over
the given date range, converts the returns to volume acoustic
backscattering strength using the instrument's XML calibration file,
and writes a NetCDF data file and a PNG echogram figure to the output
directory. Dates are given as one or two tokens, either YYYYMM for a
whole month or YYYYMMDD for a day; two tokens bound an inclusive
range.`,
	Args: cobra.RangeArgs(4, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, xmlFile := args[0], args[1]
		dates := args[2 : len(args)-1]
		outDir := args[len(args)-1]

		start, end, err := azfp.ResolveRange(dates)
		if err != nil {
			return err
		}
		cfg, err := readConfig(configFile)
		if err != nil {
			return err
		}

		// Site defaults, overridden by individual flags.
		var site echogram.Mooring
		if subsite != "" {
			var ok bool
			if site, ok = echogram.Moorings(cfg.Moorings)[subsite]; !ok {
				return fmt.Errorf("unknown subsite %q", subsite)
			}
		}
		if cmd.Flags().Changed("tilt_correction") {
			site.TiltCorrection = tiltCorrection
		}
		if cmd.Flags().Changed("deployed_depth") {
			site.DeployedDepth = deployedDepth
		}
		if len(colorbarRange) == 2 {
			site.ColorbarRange = [2]float64{colorbarRange[0], colorbarRange[1]}
		}
		if len(verticalRange) == 2 {
			site.VerticalRange = [2]float64{verticalRange[0], verticalRange[1]}
		}
		if site.ColorbarRange[0] == site.ColorbarRange[1] {
			site.ColorbarRange = [2]float64{-150, 0}
		}

		files, err := azfp.SelectFiles(dataDir, start, end)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Printf("No data files found in %s between %s and %s.\n",
				dataDir, start.Format("2006-01-02"), end.Format("2006-01-02"))
			return nil
		}

		cal, err := azfp.ReadCoefficients(xmlFile)
		if err != nil {
			return err
		}
		env := azfp.NominalEnvironment(cfg.Temperature, site.DeployedDepth)
		d, err := echogram.Assemble(files, cal, env, site.TiltCorrection)
		if err != nil {
			return err
		}
		d = d.BurstMedian(burstInterval)

		deployment := ""
		if deploymentNumber > 0 {
			deployment = strconv.Itoa(deploymentNumber)
		}
		base := echogram.OutputName(d.SerialNumber, start, end, subsite, deployment)

		if err := echogram.WriteNetCDF(filepath.Join(outDir, base+".nc"), d); err != nil {
			return err
		}
		opts := echogram.PlotOptions{
			Title: echogram.PlotTitle(site.LongName, subsite, deploymentNumber,
				site.DeployedDepth, start, end),
			ColorbarRange: site.ColorbarRange,
			VerticalRange: site.VerticalRange,
			Downward:      site.Downward,
		}
		if err := echogram.Render(filepath.Join(outDir, base+".png"), d, opts); err != nil {
			return err
		}
		fmt.Printf("Wrote %s.nc and %s.png to %s\n", base, base, outDir)
		return nil
	},
	DisableAutoGenTag: true,
}
